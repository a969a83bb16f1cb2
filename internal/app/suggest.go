package app

import (
	"github.com/agnivade/levenshtein"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/zerr"
)

// maxSuggestionDistance bounds the edit distance of a suggested package name.
const maxSuggestionDistance = 3

// notInstalled reports a missing package, naming the closest installed one
// when there is a likely typo.
func (a *App) notInstalled(project *domain.Project, name string) error {
	err := zerr.With(domain.ErrPackageNotInstalled, "package", name)
	if suggestion := a.suggest(project, name); suggestion != "" {
		err = zerr.With(err, "did_you_mean", suggestion)
	}
	return err
}

func (a *App) suggest(project *domain.Project, name string) string {
	pkgs, err := a.repo.Packages(project)
	if err != nil {
		return ""
	}

	best, bestDistance := "", maxSuggestionDistance+1
	for _, pkg := range pkgs {
		if d := levenshtein.ComputeDistance(name, pkg.Name); d < bestDistance {
			best, bestDistance = pkg.Name, d
		}
	}
	return best
}
