// originctl tareas administrativas fuera de banda: migraciones, verificación de hosts y
// activación de cuentas.
//
// Uso:
//
//	originctl migrate up|down
//	originctl host verify <email> [--notes "..."]
//	originctl host unverify <email>
//	originctl account deactivate --kind host <email>
package main

import (
	"os"
)

func main() {
	if err := NewRootCmd(defaultCLI()).Execute(); err != nil {
		os.Exit(1)
	}
}
