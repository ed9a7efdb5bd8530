package main

import (
	"flag"
	"strings"

	"go.uber.org/fx"

	"github.com/Prabhugems/AMASI-management-sub013/internal/app"
)

var defaultBin string

func selectedModules(binValue string) []fx.Option {
	selected := strings.TrimSpace(strings.ToLower(binValue))

	switch selected {
	case "abstracts":
		return []fx.Option{
			app.AuthModule(),
			app.AbstractsModule(),
		}
	case "registrations":
		return []fx.Option{
			app.AuthModule(),
			app.RegistrationsModule(),
		}
	default:
		return []fx.Option{
			app.AuthModule(),
			app.AbstractsModule(),
			app.RegistrationsModule(),
		}
	}
}

func main() {
	bin := flag.String("bin", defaultBin, "select module binary: abstracts|registrations (default: all)")
	flag.Parse()

	app.New(*bin, selectedModules(*bin)...).Run()
}
