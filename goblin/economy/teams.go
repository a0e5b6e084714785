package economy

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/afterclass/commitgoblin/goblin/errs"
	"github.com/disgoorg/snowflake/v2"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name and collapses every run of other characters to a
// single dash.
func Slugify(name string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-"), "-")
}

func teamNotFound(name string) error {
	return errs.New(errs.CodeNotFound, "There is no team with the name **%s**.", strings.TrimSpace(name))
}

func teamExists(name string) error {
	return errs.New(errs.CodeExists, "A team with the name **%s** already exists.", strings.TrimSpace(name))
}

func requireTeamName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.New(errs.CodeInvalidInput, "Team names cannot be empty.")
	}
	return nil
}

// newTeamID derives a unique id from name. Collisions get -1, -2 and so on
// appended to the base slug.
func newTeamID(doc *models.Document, name string) string {
	base := Slugify(name)
	if base == "" {
		base = fmt.Sprintf("team-%d", len(doc.Teams)+1)
	}
	id := base
	for n := 1; ; n++ {
		if _, taken := doc.Teams[id]; !taken {
			return id
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}

// CreateTeam creates a team with the creator as its first member.
func (s *Service) CreateTeam(ctx context.Context, creatorID snowflake.ID, name, description string) (models.Team, error) {
	if err := requireTeamName(name); err != nil {
		return models.Team{}, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = config.DefaultTeamDescription
	}

	var out models.Team
	err := s.store.Update(ctx, "team_create", func(doc *models.Document) error {
		if _, ok := findTeam(doc, name); ok {
			return teamExists(name)
		}
		team := &models.Team{
			ID:          newTeamID(doc, name),
			Name:        strings.TrimSpace(name),
			Description: description,
			CreatedBy:   key(creatorID),
			CreatedAt:   s.now().UTC(),
			Members:     []string{key(creatorID)},
		}
		doc.Teams[team.ID] = team
		out = team.Clone()
		return nil
	})
	if err != nil {
		return models.Team{}, err
	}

	slog.Info("Team created",
		slog.String("type", "cmd"),
		slog.String("team_id", out.ID),
		slog.String("user_id", out.CreatedBy),
	)
	return out, nil
}

func (s *Service) JoinTeam(ctx context.Context, userID snowflake.ID, name string) (models.Team, error) {
	return s.mutateTeam(ctx, "team_join", name, func(team *models.Team) error {
		if !team.AddMember(key(userID)) {
			return errs.New(errs.CodeAlreadyDone, "You are already a member of **%s**.", team.Name)
		}
		return nil
	})
}

func (s *Service) LeaveTeam(ctx context.Context, userID snowflake.ID, name string) (models.Team, error) {
	return s.mutateTeam(ctx, "team_leave", name, func(team *models.Team) error {
		if !team.RemoveMember(key(userID)) {
			return errs.New(errs.CodeAlreadyDone, "You are not a member of **%s**.", team.Name)
		}
		return nil
	})
}

// RenameTeam is creator-only. Renaming to a name held by another team fails;
// changing only the case or spacing of the team's own name is allowed.
func (s *Service) RenameTeam(ctx context.Context, actorID snowflake.ID, oldName, newName string) (models.Team, error) {
	if err := requireTeamName(newName); err != nil {
		return models.Team{}, err
	}

	var out models.Team
	err := s.store.Update(ctx, "team_rename", func(doc *models.Document) error {
		team, ok := findTeam(doc, oldName)
		if !ok {
			return teamNotFound(oldName)
		}
		if team.CreatedBy != key(actorID) {
			return errs.New(errs.CodeForbidden, "Only the team creator can rename the team.")
		}
		if other, ok := findTeam(doc, newName); ok && other.ID != team.ID {
			return teamExists(newName)
		}
		team.Name = strings.TrimSpace(newName)
		out = team.Clone()
		return nil
	})
	return out, err
}

func (s *Service) SetTeamDescription(ctx context.Context, actorID snowflake.ID, name, description string) (models.Team, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		description = config.DefaultTeamDescription
	}
	return s.mutateTeam(ctx, "team_describe", name, func(team *models.Team) error {
		if team.CreatedBy != key(actorID) {
			return errs.New(errs.CodeForbidden, "Only the team creator can change the description.")
		}
		team.Description = description
		return nil
	})
}

// KickFromTeam removes targetID. Only the creator may kick, and never
// themselves.
func (s *Service) KickFromTeam(ctx context.Context, actorID snowflake.ID, name string, targetID snowflake.ID) (models.Team, error) {
	return s.mutateTeam(ctx, "team_kick", name, func(team *models.Team) error {
		if team.CreatedBy != key(actorID) {
			return errs.New(errs.CodeForbidden, "Only the team creator can remove members.")
		}
		if targetID == actorID {
			return errs.New(errs.CodeInvalidInput, "You can't kick yourself. Use `/team-leave` instead.")
		}
		if !team.HasMember(key(targetID)) {
			return errs.New(errs.CodeAlreadyDone, "<@%s> is not a member of **%s**.", targetID, team.Name)
		}
		team.RemoveMember(key(targetID))
		return nil
	})
}

// mutateTeam resolves name and applies fn. fn must check before it mutates.
func (s *Service) mutateTeam(ctx context.Context, op, name string, fn func(team *models.Team) error) (models.Team, error) {
	var out models.Team
	err := s.store.Update(ctx, op, func(doc *models.Document) error {
		team, ok := findTeam(doc, name)
		if !ok {
			return teamNotFound(name)
		}
		if err := fn(team); err != nil {
			return err
		}
		out = team.Clone()
		return nil
	})
	return out, err
}

func (s *Service) TeamInfo(name string) (models.Team, error) {
	var (
		out models.Team
		err error
	)
	s.store.View(func(doc *models.Document) {
		team, ok := findTeam(doc, name)
		if !ok {
			err = teamNotFound(name)
			return
		}
		out = team.Clone()
	})
	return out, err
}

// UserTeams returns the teams userID belongs to, by name.
func (s *Service) UserTeams(userID snowflake.ID) []models.Team {
	var out []models.Team
	s.store.View(func(doc *models.Document) {
		for _, t := range doc.TeamsOf(key(userID)) {
			out = append(out, t.Clone())
		}
	})
	sort.Slice(out, func(i, j int) bool { return normalizeName(out[i].Name) < normalizeName(out[j].Name) })
	return out
}

// ListTeams returns up to limit teams, largest first.
func (s *Service) ListTeams(limit int) []models.Team {
	var out []models.Team
	s.store.View(func(doc *models.Document) {
		out = make([]models.Team, 0, len(doc.Teams))
		for _, t := range doc.Teams {
			out = append(out, t.Clone())
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Members) != len(out[j].Members) {
			return len(out[i].Members) > len(out[j].Members)
		}
		return normalizeName(out[i].Name) < normalizeName(out[j].Name)
	})
	return truncate(out, limit)
}
