package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/origon-auth/internal/domain/entity"
)

func newAccountCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Activación de cuentas de usuario o host",
	}
	var kind string
	cmd.PersistentFlags().StringVar(&kind, "kind", string(entity.KindUser), "tipo de cuenta: user | host")

	cmd.AddCommand(&cobra.Command{
		Use:   "activate <email>",
		Short: "Reactivar una cuenta",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.setActive(cmd, kind, args[0], true)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "deactivate <email>",
		Short: "Desactivar una cuenta y revocar sus tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.setActive(cmd, kind, args[0], false)
		},
	})
	return cmd
}

func (c *cli) setActive(cmd *cobra.Command, kind, email string, active bool) error {
	k := entity.Kind(kind)
	if k != entity.KindUser && k != entity.KindHost {
		return fmt.Errorf("--kind debe ser user o host, no %q", kind)
	}
	ct, err := c.container(cmd.Context())
	if err != nil {
		return err
	}
	defer ct.Close()

	revoked, err := ct.Admin().SetActive(cmd.Context(), k, email, active)
	if err != nil {
		return err
	}
	cmd.Printf("%s %s: is_active=%t tokens_revocados=%d\n", k, email, active, revoked)
	return nil
}
