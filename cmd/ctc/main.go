package main

import (
	"fmt"

	"github.com/temirov/ctc/internal/cli"
	"github.com/temirov/ctc/internal/utils"
)

// main is the entry point for the ctc command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.Execute(loggerInstance); applicationExecutionError != nil {
		loggerInstance.Fatal("Error: " + applicationExecutionError.Error())
	}
}
