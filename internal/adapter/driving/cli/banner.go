package cli

import (
	"fmt"

	"github.com/diillson/demand-forecast-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(_ string) {
	banner := `
  ____                                 _   _____                            _
 |  _ \  ___ _ __ ___   __ _ _ __   __| | |  ___|__  _ __ ___  ___ __ _ ___| |_
 | | | |/ _ \ '_ ' _ \ / _' | '_ \ / _' | | |_ / _ \| '__/ _ \/ __/ _' / __| __|
 | |_| |  __/ | | | | | (_| | | | | (_| | |  _| (_) | | |  __/ (_| (_| \__ \ |_
 |____/ \___|_| |_| |_|\__,_|_| |_|\__,_| |_|  \___/|_|  \___|\___\__,_|___/\__|
        `
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()
	magenta := color.New(color.FgMagenta, color.Bold).SprintFunc()

	fmt.Println(blue(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(magenta(fmt.Sprintf("Demand Forecast CLI (v%s)", formattedVersion)))
}
