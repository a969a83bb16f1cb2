package inliner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recipe/internal/adapters/store"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports/mocks"
	"go.trai.ch/recipe/internal/engine/inliner"
	"go.uber.org/mock/gomock"
)

const lockFixture = `{
    "content-hash": "abc",
    "packages": [
        {
            "name": "sample/blog",
            "version": "1.0.0"
        }
    ],
    "packages-dev": []
}
`

var blogRecipe = &domain.Package{
	Name:    "sample/blog",
	Version: "1.0.0",
	Type:    "recipe",
	Requires: domain.Links{
		{Target: "php", Constraint: ">=8.1"},
		{Target: "vendor/a", Constraint: "^2.0"},
		{Target: "vendor/b", Constraint: "1.3.0"},
	},
}

type fixture struct {
	project   *domain.Project
	inliner   *inliner.Inliner
	solver    *mocks.MockPackageSolver
	repo      *mocks.MockPackageRepository
	logger    *mocks.MockLogger
	manifests *store.ManifestStore
}

func newFixture(t *testing.T, manifest string, withLock bool) *fixture {
	t.Helper()

	root := t.TempDir()
	manifestPath := filepath.Join(root, domain.ManifestFileName)
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifest), domain.FilePerm))
	lockPath := domain.LockPathFor(manifestPath)
	if withLock {
		require.NoError(t, os.WriteFile(lockPath, []byte(lockFixture), domain.FilePerm))
	}

	ctrl := gomock.NewController(t)
	f := &fixture{
		project: &domain.Project{
			Root:         root,
			ManifestPath: manifestPath,
			LockPath:     lockPath,
			VendorDir:    filepath.Join(root, domain.DefaultVendorDir),
			PublicDir:    domain.DefaultPublicDir,
			Config:       domain.DefaultConfig(),
		},
		solver:    mocks.NewMockPackageSolver(ctrl),
		repo:      mocks.NewMockPackageRepository(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		manifests: store.NewManifestStore(),
	}
	f.inliner = inliner.New(f.manifests, store.NewLockStore(), f.repo, f.solver, f.logger)
	return f
}

// expectRequire makes the solver add the recipe to require, like composer does.
func (f *fixture) expectRequire(t *testing.T, want domain.Requirement) {
	t.Helper()
	f.solver.EXPECT().Require(gomock.Any(), f.project, []domain.Requirement{want}).DoAndReturn(
		func(_ context.Context, project *domain.Project, reqs []domain.Requirement) error {
			m, err := f.manifests.Load(project.ManifestPath)
			require.NoError(t, err)
			constraint := reqs[0].Constraint
			if constraint == "" {
				constraint = "^1.0"
			}
			m.SetRequire(reqs[0].Name, constraint, false)
			return f.manifests.Save(m)
		})
}

func (f *fixture) load(t *testing.T) *domain.Manifest {
	t.Helper()
	m, err := f.manifests.Load(f.project.ManifestPath)
	require.NoError(t, err)
	return m
}

func (f *fixture) raw(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(f.project.ManifestPath)
	require.NoError(t, err)
	return string(data)
}

func TestInstallRecipe_NewRecipe(t *testing.T) {
	f := newFixture(t, "{\n    \"name\": \"acme/site\",\n    \"require\": {}\n}\n", true)

	f.logger.EXPECT().Info("Inlining all dependencies for recipe sample/blog:").Times(1)
	f.logger.EXPECT().Info(" * Inlining vendor/a (new)").Times(1)
	f.logger.EXPECT().Info(" * Inlining vendor/b (new)").Times(1)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	f.expectRequire(t, domain.Requirement{Name: "sample/blog", Constraint: "^1.0"})
	f.repo.EXPECT().FindPackage(f.project, "sample/blog").Return(blogRecipe, nil)
	f.solver.EXPECT().Update(gomock.Any(), f.project, domain.SolveOptions{DevMode: true}).Return(nil)

	err := f.inliner.InstallRecipe(context.Background(), f.project, inliner.Request{
		Recipe:     "sample/blog",
		Constraint: "^1.0",
	})
	require.NoError(t, err)

	m := f.load(t)
	assert.Equal(t, domain.StringMap{"vendor/a": "^2.0", "vendor/b": "1.3.0"}, m.Require)
	assert.Equal(t, domain.StringMap{"sample/blog": "1.0.0"}, m.Provide)
	assert.Equal(t, map[string]string{"vendor/a": "^2.0", "vendor/b": "1.3.0"}, m.DependencyLedger())
	require.NoError(t, m.Validate())
}

func TestInstallRecipe_ManuallyRemovedDependency(t *testing.T) {
	f := newFixture(t, `{
    "require": {
        "vendor/a": "^2.0"
    },
    "extra": {
        "project-dependencies-installed": {
            "vendor/a": "^2.0",
            "vendor/c": "1.0.0"
        }
    }
}
`, true)

	recipe := &domain.Package{
		Name:    "sample/blog",
		Version: "1.0.0",
		Type:    "recipe",
		Requires: domain.Links{
			{Target: "vendor/a", Constraint: "^2.0"},
			{Target: "vendor/c", Constraint: "1.0.0"},
		},
	}

	f.logger.EXPECT().Info(" * Inlining vendor/a (unchanged)").Times(1)
	f.logger.EXPECT().Info(" * Skipping vendor/c (manually removed, not reinstalled)").Times(1)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	f.expectRequire(t, domain.Requirement{Name: "sample/blog"})
	f.repo.EXPECT().FindPackage(f.project, "sample/blog").Return(recipe, nil)
	f.solver.EXPECT().Update(gomock.Any(), f.project, gomock.Any()).Return(nil)

	require.NoError(t, f.inliner.InstallRecipe(context.Background(), f.project, inliner.Request{Recipe: "sample/blog"}))

	m := f.load(t)
	assert.Equal(t, domain.StringMap{"vendor/a": "^2.0"}, m.Require)
	assert.NotContains(t, m.Require, "vendor/c")
	assert.Equal(t, map[string]string{"vendor/a": "^2.0", "vendor/c": "1.0.0"}, m.DependencyLedger())
}

func TestInstallRecipe_Idempotent(t *testing.T) {
	f := newFixture(t, "{\n    \"name\": \"acme/site\",\n    \"require\": {\n        \"vendor/x\": \"*\"\n    }\n}\n", true)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.repo.EXPECT().FindPackage(f.project, "sample/blog").Return(blogRecipe, nil).Times(2)
	f.solver.EXPECT().Update(gomock.Any(), f.project, gomock.Any()).Return(nil).Times(2)

	req := inliner.Request{Recipe: "sample/blog", Constraint: "^1.0"}

	f.expectRequire(t, domain.Requirement{Name: "sample/blog", Constraint: "^1.0"})
	require.NoError(t, f.inliner.InstallRecipe(context.Background(), f.project, req))
	first := f.raw(t)

	f.expectRequire(t, domain.Requirement{Name: "sample/blog", Constraint: "^1.0"})
	require.NoError(t, f.inliner.InstallRecipe(context.Background(), f.project, req))
	second := f.raw(t)

	assert.Equal(t, first, second)
	assert.NotContains(t, f.load(t).Require, "sample/blog")
}

func TestInstallRecipe_LedgerMonotonic(t *testing.T) {
	f := newFixture(t, "{\n    \"require\": {}\n}\n", true)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.repo.EXPECT().FindPackage(f.project, "sample/blog").Return(blogRecipe, nil).Times(2)
	f.solver.EXPECT().Update(gomock.Any(), f.project, gomock.Any()).Return(nil).Times(2)

	req := inliner.Request{Recipe: "sample/blog", Constraint: "^1.0"}
	f.expectRequire(t, domain.Requirement{Name: "sample/blog", Constraint: "^1.0"})
	require.NoError(t, f.inliner.InstallRecipe(context.Background(), f.project, req))

	// The user drops vendor/b by hand.
	m := f.load(t)
	m.RemoveRequire("vendor/b")
	require.NoError(t, f.manifests.Save(m))

	f.expectRequire(t, domain.Requirement{Name: "sample/blog", Constraint: "^1.0"})
	require.NoError(t, f.inliner.InstallRecipe(context.Background(), f.project, req))

	m = f.load(t)
	assert.NotContains(t, m.Require, "vendor/b")
	assert.Equal(t, "1.3.0", m.DependencyLedger()["vendor/b"])
}

func TestInstallRecipe_SolverFailure(t *testing.T) {
	const manifest = "{\n    \"require\": {}\n}\n"
	f := newFixture(t, manifest, true)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	solverErr := &domain.SolverError{Op: "require", Code: 2}
	f.solver.EXPECT().Require(gomock.Any(), f.project, gomock.Any()).Return(solverErr)

	err := f.inliner.InstallRecipe(context.Background(), f.project, inliner.Request{Recipe: "sample/blog"})
	require.ErrorIs(t, err, solverErr)
	assert.Equal(t, manifest, f.raw(t))
}

func TestInstallRecipe_PackageNotInstalled(t *testing.T) {
	f := newFixture(t, "{\n    \"require\": {}\n}\n", true)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	f.expectRequire(t, domain.Requirement{Name: "sample/blog"})
	f.repo.EXPECT().FindPackage(f.project, "sample/blog").Return(nil, nil)

	err := f.inliner.InstallRecipe(context.Background(), f.project, inliner.Request{Recipe: "sample/blog"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrPackageNotInstalled.Error())

	// Only the solver's own require edit is on disk.
	raw := f.raw(t)
	assert.Contains(t, raw, "sample/blog")
	assert.NotContains(t, raw, "provide")
}

func TestInstallRecipe_VersionFallbacks(t *testing.T) {
	f := newFixture(t, "{\n    \"require\": {}\n}\n", false)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	unversioned := &domain.Package{Name: "sample/blog", Type: "recipe"}
	f.expectRequire(t, domain.Requirement{Name: "sample/blog", Constraint: "^1.2.0"})
	f.repo.EXPECT().FindPackage(f.project, "sample/blog").Return(unversioned, nil)
	f.solver.EXPECT().Update(gomock.Any(), f.project, gomock.Any()).Return(nil)

	err := f.inliner.InstallRecipe(context.Background(), f.project, inliner.Request{
		Recipe:           "sample/blog",
		InstalledVersion: "1.2.0",
	})
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", f.load(t).Provide["sample/blog"])
}

func TestInstallRecipe_VersionUnknown(t *testing.T) {
	f := newFixture(t, "{\n    \"require\": {}\n}\n", false)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	f.expectRequire(t, domain.Requirement{Name: "sample/blog"})
	f.repo.EXPECT().FindPackage(f.project, "sample/blog").Return(&domain.Package{Name: "sample/blog"}, nil)

	err := f.inliner.InstallRecipe(context.Background(), f.project, inliner.Request{Recipe: "sample/blog"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrRecipeVersionUnknown.Error())
	assert.NotContains(t, f.raw(t), "provide")
}

func TestInstallRecipe_Announce(t *testing.T) {
	tests := []struct {
		name string
		req  inliner.Request
		log  string
		want string
	}{
		{
			name: "latest",
			req:  inliner.Request{Recipe: "sample/blog"},
			log:  "Installing latest version of sample/blog",
		},
		{
			name: "auto-detected",
			req:  inliner.Request{Recipe: "sample/blog", InstalledVersion: "4.2.1"},
			log:  "Auto-detected constraint ^4.2.1",
			want: "^4.2.1",
		},
		{
			name: "no guess",
			req:  inliner.Request{Recipe: "sample/blog", InstalledVersion: "v2"},
			log:  "Could not detect a constraint, the latest version will be installed",
		},
		{
			name: "explicit upgrade",
			req:  inliner.Request{Recipe: "sample/blog", InstalledVersion: "1.0.0", Constraint: "^2.0"},
			log:  "Updating existing recipe from 1.0.0 to ^2.0",
			want: "^2.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "{\n    \"require\": {}\n}\n", true)
			f.logger.EXPECT().Info(tt.log).Times(1)
			f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

			f.solver.EXPECT().
				Require(gomock.Any(), f.project, []domain.Requirement{{Name: "sample/blog", Constraint: tt.want}}).
				Return(&domain.SolverError{Op: "require", Code: 1})

			err := f.inliner.InstallRecipe(context.Background(), f.project, tt.req)
			require.Error(t, err)
		})
	}
}

func TestFindInstalledVersion(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		withLock bool
		want     string
	}{
		{
			name:     "locked version wins",
			manifest: `{"provide": {"sample/blog": "0.9.0"}}`,
			withLock: true,
			want:     "1.0.0",
		},
		{
			name:     "provide constraint",
			manifest: `{"provide": {"sample/blog": "0.9.0"}, "require": {"sample/blog": "^0.8"}}`,
			want:     "0.9.0",
		},
		{
			name:     "require constraint",
			manifest: `{"require": {"sample/blog": "^0.8"}}`,
			want:     "^0.8",
		},
		{
			name:     "not installed",
			manifest: `{"require": {}}`,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.manifest, tt.withLock)

			got, err := f.inliner.FindInstalledVersion(f.project, "sample/blog")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
