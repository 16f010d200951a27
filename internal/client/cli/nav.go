package cli

import (
	"context"
)

// Go navigates to path through the guard: go <path>.
func (a *App) Go(ctx context.Context, path string) error {
	if path == "" {
		a.println("Usage: go <path>")
		return errUsage
	}
	if _, err := a.nav.Navigate(ctx, path); err != nil {
		a.println(err.Error())
		return err
	}
	a.printLocation()
	return nil
}

func (a *App) Where(ctx context.Context) error {
	a.printLocation()
	return nil
}

// open navigates to a named route and reports whether the guard let the
// user in.
func (a *App) open(ctx context.Context, name string, pairs ...string) (bool, error) {
	path, err := a.nav.URL(name, pairs...)
	if err != nil {
		return false, err
	}
	loc, err := a.nav.Navigate(ctx, path)
	if err != nil {
		a.println(err.Error())
		return false, err
	}
	if loc.Name != name {
		a.printf("Please log in first, you will be taken back to %s\n", path)
		a.printLocation()
		return false, nil
	}
	return true, nil
}

func (a *App) printLocation() {
	a.printf("-> %s\n", a.nav.Current())
}
