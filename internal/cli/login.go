package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"propview/internal/session"
)

func newLoginCmd() *cobra.Command {
	var name string
	var contact string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store your name and contact number",
		Long:  "Store the name and 10-digit contact number used to label and attribute your listings. The contact number is an ownership key, not a credential.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(name, contact)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "your display name")
	cmd.Flags().StringVar(&contact, "contact", "", "your 10-digit contact number")

	return cmd
}

func runLogin(name, contact string) error {
	reader := bufio.NewReader(os.Stdin)

	if name == "" {
		fmt.Print("Your name: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading name: %w", err)
		}
		name = strings.TrimSpace(line)
	}

	if contact == "" {
		fmt.Print("Contact number: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading contact: %w", err)
		}
		contact = strings.TrimSpace(line)
	}

	sess := session.Session{
		Name:    strings.TrimSpace(name),
		Contact: session.NormalizeContact(contact),
	}

	path, err := session.DefaultPath()
	if err != nil {
		return err
	}
	if err := session.Save(path, sess); err != nil {
		return err
	}

	fmt.Printf("Welcome, %s!\n", sess.Name)
	return nil
}
