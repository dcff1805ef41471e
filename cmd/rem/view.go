package main

import (
	"fmt"

	"rem-go/internal/rem"
)

// consoleView renders controller callbacks on stdout. List callbacks are
// no-ops: the commands print the data they asked for themselves, so pushing
// it a second time would duplicate output.
type consoleView struct{}

func (*consoleView) ShowSuccess(message string) { fmt.Println(message) }
func (*consoleView) ShowError(message string)   { fmt.Println("Error:", message) }
func (*consoleView) RefreshData()               {}

func (*consoleView) ShowOwners([]*rem.Owner)        {}
func (*consoleView) ShowProperties([]*rem.Property) {}
func (*consoleView) ShowSettings(rem.Settings)      {}
func (*consoleView) ShowBackups([]*rem.BackupInfo)  {}
