// staffctl tareas de operación: migraciones, datos de demo y limpieza de sesiones.
package main

import "github.com/jhoicas/staffhub-api/cmd/staffctl/cmd"

func main() {
	cmd.Execute()
}
