package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/healthdesk/healthdesk/internal/domain/pharmacy"
	"github.com/healthdesk/healthdesk/internal/platform/rest"
	"github.com/healthdesk/healthdesk/internal/view"
)

func parseIntArg(s, name string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, s)
	}
	return n, nil
}

func pharmaciesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pharmacies",
		Short: "Browse partner pharmacies",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireArea(cmd.Context(), view.AreaPharmacies); err != nil {
				return err
			}
			svc := pharmacy.NewService(a.api)
			rows, err := svc.ListPharmacies(cmd.Context())
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to load pharmacies."))
				return err
			}
			view.RenderPharmacies(os.Stdout, rows)
			return nil
		},
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a pharmacy (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireAdmin(cmd.Context()); err != nil {
				return err
			}
			p := pharmacy.PharmacyCreate{}
			p.Name, _ = cmd.Flags().GetString("name")
			p.Address, _ = cmd.Flags().GetString("address")
			p.Contact, _ = cmd.Flags().GetString("contact")
			p.OperatingHours, _ = cmd.Flags().GetString("hours")
			p.Services, _ = cmd.Flags().GetString("services")

			svc := pharmacy.NewService(a.api)
			created, err := svc.CreatePharmacy(cmd.Context(), p)
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to add pharmacy."))
				return err
			}
			a.notify.Successf("Added %s (%s).", created.Name, created.ID)
			return nil
		},
	}
	addCmd.Flags().String("name", "", "Pharmacy name")
	addCmd.Flags().String("address", "", "Street address")
	addCmd.Flags().String("contact", "", "Contact number")
	addCmd.Flags().String("hours", "", "Operating hours")
	addCmd.Flags().String("services", "", "Services offered")
	cmd.AddCommand(addCmd)

	return cmd
}

func medicinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "medicines",
		Short: "Browse the medicine catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireArea(cmd.Context(), view.AreaMedicines); err != nil {
				return err
			}
			svc := pharmacy.NewService(a.api)
			rows, err := svc.ListMedicines(cmd.Context())
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to load medicines."))
				return err
			}
			view.RenderMedicines(os.Stdout, rows)
			return nil
		},
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a medicine (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireAdmin(cmd.Context()); err != nil {
				return err
			}
			m := pharmacy.MedicineCreate{}
			m.Name, _ = cmd.Flags().GetString("name")
			m.Description, _ = cmd.Flags().GetString("description")
			m.Price, _ = cmd.Flags().GetFloat64("price")
			m.Stock, _ = cmd.Flags().GetInt("stock")
			m.Category, _ = cmd.Flags().GetString("category")

			svc := pharmacy.NewService(a.api)
			created, err := svc.CreateMedicine(cmd.Context(), m)
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to add medicine."))
				return err
			}
			a.notify.Successf("Added %s (%s).", created.Name, created.ID)
			return nil
		},
	}
	addCmd.Flags().String("name", "", "Medicine name")
	addCmd.Flags().String("description", "", "Description")
	addCmd.Flags().Float64("price", 0, "Unit price")
	addCmd.Flags().Int("stock", 0, "Units in stock")
	addCmd.Flags().String("category", "", "Category")
	cmd.AddCommand(addCmd)

	return cmd
}

func ordersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List your orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireArea(cmd.Context(), view.AreaOrders); err != nil {
				return err
			}
			svc := pharmacy.NewService(a.api)
			rows, err := svc.ListOrders(cmd.Context())
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to load orders."))
				return err
			}
			view.RenderOrders(os.Stdout, rows)
			return nil
		},
	}

	setStatusCmd := &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Move an order to a new status (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireAdmin(cmd.Context()); err != nil {
				return err
			}
			svc := pharmacy.NewService(a.api)
			updated, err := svc.UpdateOrderStatus(cmd.Context(), args[0], args[1])
			if err != nil {
				a.notify.Error(rest.Detail(err, "Failed to update order."))
				return err
			}
			a.notify.Successf("Order %s is now %s.", updated.ID, updated.Status)
			return nil
		},
	}
	cmd.AddCommand(setStatusCmd)

	return cmd
}

// shopCmd is the interactive cart session: browse the catalogue, build a
// cart, and check out. The cart lives only for this process.
func shopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "Interactive medicine shopping session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireArea(cmd.Context(), view.AreaShop); err != nil {
				return err
			}
			ctx := cmd.Context()
			svc := pharmacy.NewService(a.api)

			// The catalogue is a persistent list for the whole session: a
			// failed refresh keeps the last good rows on screen.
			catalogue := view.NewListView(svc.ListMedicines)
			if err := catalogue.Refresh(ctx); err != nil {
				a.notify.Error(rest.Detail(err, "Failed to load medicines."))
				return err
			}
			byID := func() map[string]pharmacy.Medicine {
				rows := catalogue.Rows()
				out := make(map[string]pharmacy.Medicine, len(rows))
				for _, m := range rows {
					out[m.ID] = m
				}
				return out
			}

			cart := pharmacy.NewCart()
			view.RenderMedicines(os.Stdout, catalogue.Rows())
			fmt.Println(`Commands: add <id>, more <id>, less <id>, rm <id>, cart, list, refresh, checkout, quit`)

			for {
				line := prompt("shop> ")
				fields := strings.Fields(line)
				if len(fields) == 0 {
					continue
				}
				verb := fields[0]
				arg := ""
				if len(fields) > 1 {
					arg = fields[1]
				}

				switch verb {
				case "add":
					m, ok := byID()[arg]
					if !ok {
						fmt.Println("Unknown medicine id.")
						continue
					}
					cart.Add(m)
					fmt.Printf("Added %s. Cart total: %.2f\n", m.Name, cart.Total())
				case "list":
					view.RenderMedicines(os.Stdout, catalogue.Rows())
				case "refresh":
					if err := catalogue.Refresh(ctx); err != nil {
						a.notify.Error(rest.Detail(err, "Failed to refresh medicines."))
					}
					view.RenderMedicines(os.Stdout, catalogue.Rows())
				case "more":
					cart.UpdateQuantity(arg, +1)
					view.RenderCart(os.Stdout, cart)
				case "less":
					cart.UpdateQuantity(arg, -1)
					view.RenderCart(os.Stdout, cart)
				case "rm":
					cart.Remove(arg)
					view.RenderCart(os.Stdout, cart)
				case "cart":
					view.RenderCart(os.Stdout, cart)
				case "checkout":
					order, err := svc.PlaceOrder(ctx, cart)
					if errors.Is(err, pharmacy.ErrEmptyCart) {
						fmt.Println("Your cart is empty.")
						continue
					}
					if err != nil {
						a.notify.Error(rest.Detail(err, "Failed to place order."))
						continue
					}
					a.notify.Successf("Order %s placed. Total: %.2f", order.ID, order.TotalAmount)
				case "quit", "exit":
					return nil
				default:
					fmt.Println("Unknown command.")
				}
			}
		},
	}
}
