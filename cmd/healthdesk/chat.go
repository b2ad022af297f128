package main

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/healthdesk/healthdesk/internal/domain/chat"
	"github.com/healthdesk/healthdesk/internal/platform/rest"
	"github.com/healthdesk/healthdesk/internal/view"
)

// chatCmd runs the assistant conversation. One message at a time; an image
// can be staged with /image before the next send.
func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the health assistant",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.requireArea(cmd.Context(), view.AreaChat); err != nil {
				return err
			}
			ctx := cmd.Context()
			panel := chat.NewPanel(a.api, a.logger)

			fmt.Println(`Type a message, or: /image <path>, /noimage, /history, /quit`)
			for {
				line := prompt("you> ")
				switch {
				case line == "/quit" || line == "/exit":
					return nil
				case line == "/noimage":
					panel.ClearImage()
					fmt.Println("Attachment cleared.")
					continue
				case line == "/history":
					history, err := panel.History(ctx)
					if err != nil {
						a.notify.Error(rest.Detail(err, "Failed to load chat history."))
						continue
					}
					for _, m := range history {
						fmt.Printf("%s: %s\n", m.Role, m.Content)
					}
					continue
				case strings.HasPrefix(line, "/image "):
					path := strings.TrimSpace(strings.TrimPrefix(line, "/image "))
					data, err := os.ReadFile(path)
					if err != nil {
						fmt.Println("Could not read image:", err)
						continue
					}
					mimeType := mime.TypeByExtension(filepath.Ext(path))
					if mimeType == "" {
						mimeType = "application/octet-stream"
					}
					panel.AttachImage(data, filepath.Base(path), mimeType)
					fmt.Printf("Attached %s for the next message.\n", filepath.Base(path))
					continue
				}

				reply, err := panel.Send(ctx, line)
				if errors.Is(err, chat.ErrEmptyMessage) {
					continue
				}
				if err != nil {
					a.notify.Error(rest.Detail(err, "The assistant is unavailable right now."))
					continue
				}
				fmt.Println("assistant>", reply.Content)
			}
		},
	}
}
