package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/crateloft/plugseed/internal/artifact"
	"github.com/crateloft/plugseed/internal/bundle"
	"github.com/crateloft/plugseed/internal/messages"
	"github.com/crateloft/plugseed/internal/seed"
)

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// confirmOptionalHook routes the optional-plugin decision through a
// per-plugin confirm prompt. Confirming declines the hook so the engine
// installs the plugin; refusing returns a definite skip outcome.
func confirmOptionalHook(logger *log.Logger) seed.Hook {
	return seed.HookFunc(func(loc bundle.Locator, fileName string, class seed.Classification) (*seed.Outcome, error) {
		install := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf(messages.SeedConfirmOptionalTitleFmt, fileName)).
					Description(messages.SeedConfirmOptionalNote).
					Value(&install),
			),
		)
		if err := runFormFunc(form); err != nil {
			return nil, err
		}
		if install {
			return nil, nil
		}
		logger.Info(messages.SeedSkipNotRequired,
			"plugin", artifact.ID(fileName),
			"type", string(class))
		return &seed.Outcome{Locator: loc, FileName: fileName, Installed: false}, nil
	})
}
