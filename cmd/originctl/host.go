package main

import (
	"github.com/spf13/cobra"
)

func newHostCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Gestión de hosts",
	}

	var notes string
	verify := &cobra.Command{
		Use:   "verify <email>",
		Short: "Marcar un host como verificado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var n *string
			if cmd.Flags().Changed("notes") {
				n = &notes
			}
			return c.setVerified(cmd, args[0], true, n)
		},
	}
	verify.Flags().StringVar(&notes, "notes", "", "notas sobre la documentación revisada")

	unverify := &cobra.Command{
		Use:   "unverify <email>",
		Short: "Retirar la verificación de un host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.setVerified(cmd, args[0], false, nil)
		},
	}

	cmd.AddCommand(verify, unverify)
	return cmd
}

func (c *cli) setVerified(cmd *cobra.Command, email string, verified bool, notes *string) error {
	ct, err := c.container(cmd.Context())
	if err != nil {
		return err
	}
	defer ct.Close()

	h, err := ct.Admin().SetHostVerified(cmd.Context(), email, verified, notes)
	if err != nil {
		return err
	}
	cmd.Printf("host %s: is_verified=%t can_list_properties=%t\n", h.Email, h.IsVerified, h.CanListProperties())
	return nil
}
