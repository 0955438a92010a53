// airwatch — Wi-Fi association watchdog.
package main

import "github.com/ppiankov/airwatch/internal/cli"

func main() {
	cli.Execute()
}
