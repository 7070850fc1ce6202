package main

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sambuaneesh/why-py/controllers"
)

type readlineAction int

const (
	readlineContinue readlineAction = iota
	readlineExit
	readlineUnhandled
)

func classifyReadlineError(line string, err error) readlineAction {
	switch {
	case err == nil:
		return readlineUnhandled
	case err == readline.ErrInterrupt:
		return readlineContinue
	case err == io.EOF:
		if strings.TrimSpace(line) == "" {
			return readlineExit
		}
		return readlineContinue
	default:
		return readlineUnhandled
	}
}

func runREPL(ctx context.Context, controller *controllers.Controller, prompt string, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		switch classifyReadlineError(line, err) {
		case readlineExit:
			return nil
		case readlineContinue:
			continue
		}
		if err != nil {
			return err
		}

		controller.SetInput(line)
		done, err := controller.HandleKey(ctx, controllers.KeyEvent{
			Key: controllers.KeyEnter,
		})
		if err != nil {
			return err
		}
		<-done
	}
}

// runBatch submits each line of r and waits for all of them.
func runBatch(ctx context.Context, controller *controllers.Controller, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		done, err := controller.Submit(ctx, scanner.Text())
		if err != nil {
			return err
		}
		<-done
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	controller.Wait()
	return nil
}
