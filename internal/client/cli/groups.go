package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/midpointplace/midpoint/internal/client/api"
	"github.com/midpointplace/midpoint/internal/client/models"
	"github.com/midpointplace/midpoint/internal/client/router"
)

var errUsage = errors.New("usage")

// Groups lists public groups, or the user's own: groups [creator|member].
func (a *App) Groups(ctx context.Context, filter string) error {
	self := models.SelfFilter(filter)
	switch self {
	case models.SelfAny, models.SelfCreator, models.SelfMember:
	default:
		a.println("Usage: groups [creator|member]")
		return errUsage
	}

	groups, err := a.api.ListGroups(ctx, self)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		a.println("No groups")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tTYPE\tMEMBERS\tCREATOR")
	for _, g := range groups {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", g.Code, g.Name, g.Type, len(g.Members), g.Creator.Username)
	}
	return tw.Flush()
}

// Group opens a group page and prints it: group [id|code]. Without an
// argument the group of the current page is shown.
func (a *App) Group(ctx context.Context, idOrCode string) error {
	if idOrCode == "" {
		idOrCode = a.nav.Current().Params["groupcode"]
	}
	if idOrCode == "" {
		a.println("Usage: group <id|code>")
		return errUsage
	}

	if ok, err := a.open(ctx, router.RouteGroupView, "groupcode", idOrCode); err != nil || !ok {
		return err
	}

	g, err := a.api.GetGroup(ctx, idOrCode, api.GroupInclude{Users: api.Bool(true), Places: api.Bool(true)})
	if err != nil {
		return err
	}
	a.printGroup(g)
	return nil
}

// CreateGroup opens the create page, prompts for the group and shows it once
// created.
func (a *App) CreateGroup(ctx context.Context) error {
	if ok, err := a.open(ctx, router.RouteCreateGroup); err != nil || !ok {
		return err
	}

	name, err := getSimpleText(a.reader, "Group name", a.out)
	if err != nil {
		return err
	}
	kind, err := getSimpleText(a.reader, "Type (public, protected, private) [public]", a.out)
	if err != nil {
		return err
	}
	req := &models.CreateGroupRequest{Name: name, Type: models.GroupType(kind)}
	if req.Type == models.GroupProtected {
		if req.Secret, err = getSimpleText(a.reader, "Secret", a.out); err != nil {
			return err
		}
	}
	radius, err := getSimpleText(a.reader, "Search radius in meters [0 = server default]", a.out)
	if err != nil {
		return err
	}
	if radius != "" {
		if req.Radius, err = strconv.Atoi(radius); err != nil {
			a.println("Radius must be a whole number")
			return err
		}
	}

	g, err := a.api.CreateGroup(ctx, req)
	if err != nil {
		return err
	}
	a.printf("Group %q created, share code %s\n", g.Name, g.Code)

	if _, err := a.open(ctx, router.RouteGroupView, "groupcode", g.Code); err != nil {
		return err
	}
	a.printGroup(g)
	return nil
}

// JoinGroup adds the user to a group at a location:
// joingroup <id|code> <lat> <lon>.
func (a *App) JoinGroup(ctx context.Context, args []string) error {
	if len(args) != 3 {
		a.println("Usage: joingroup <id|code> <lat> <lon>")
		return errUsage
	}
	loc, err := parseLocation(args[1:])
	if err != nil {
		a.println("Usage: joingroup <id|code> <lat> <lon>")
		return err
	}

	m, err := a.api.JoinGroup(ctx, args[0], &models.GroupUserJoinRequest{Latitude: loc.Latitude, Longitude: loc.Longitude})
	if err != nil {
		return err
	}
	a.printf("Joined group %s as %s\n", m.GroupID, m.Role)
	return nil
}

func (a *App) LeaveGroup(ctx context.Context, idOrCode string) error {
	if idOrCode == "" {
		a.println("Usage: leavegroup <id|code>")
		return errUsage
	}
	if _, err := a.api.LeaveGroup(ctx, idOrCode); err != nil {
		return err
	}
	a.printf("Left group %s\n", idOrCode)
	return nil
}

func (a *App) printGroup(g *models.GroupResponse) {
	a.printf("%s (%s, code %s)\n", g.Name, g.Type, g.Code)
	if g.Creator.Username != "" {
		a.printf("created by %s\n", g.Creator.Username)
	}
	if g.MidpointLatitude != 0 || g.MidpointLongitude != 0 {
		a.printf("midpoint %.5f,%.5f", g.MidpointLatitude, g.MidpointLongitude)
		if g.Radius > 0 {
			a.printf(" within %dm", g.Radius)
		}
		a.println()
	}
	if len(g.Members) > 0 {
		a.printf("%d member(s)\n", len(g.Members))
	}
	if len(g.Places) == 0 {
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLACE\tTYPE\tRATING\tADDRESS")
	for _, p := range g.Places {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%s\n", p.Name, p.Type, p.Rating, p.Address)
	}
	_ = tw.Flush()
}

func parseLocation(args []string) (models.Location, error) {
	if len(args) != 2 {
		return models.Location{}, errUsage
	}
	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return models.Location{}, err
	}
	lon, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return models.Location{}, err
	}
	loc := models.Location{Latitude: lat, Longitude: lon}
	if err := models.Validate(loc); err != nil {
		return models.Location{}, err
	}
	return loc, nil
}
