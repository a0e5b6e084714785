package economy

import (
	"context"
	"log/slog"

	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/afterclass/commitgoblin/goblin/errs"
	"github.com/afterclass/commitgoblin/goblin/logger"
	"github.com/disgoorg/snowflake/v2"
)

type UseRequest struct {
	UserID snowflake.ID
	Item   string
	// Target is zero when no user was given.
	Target snowflake.ID
	Note   string
}

type UseResult struct {
	Item      models.ShopItem
	TargetID  snowflake.ID
	Note      string
	RoastLine string
	Remaining int
}

// UseItem consumes one usable item. Shoutouts need an explicit target; roasts
// default to the user. Tickets are acknowledged and kept.
func (s *Service) UseItem(ctx context.Context, req UseRequest) (UseResult, error) {
	item, ok := s.FindItem(req.Item)
	if !ok {
		return UseResult{}, unknownItem(req.Item)
	}

	out := UseResult{Item: item, Note: req.Note}
	uid := key(req.UserID)

	err := s.store.Update(ctx, "use_item", func(doc *models.Document) error {
		u := doc.Account(uid)
		count := u.Items[item.ID]
		if count <= 0 {
			return errs.New(errs.CodeNotOwned, "You do not own **%s**.", item.Name)
		}

		switch kind := item.Kind.(type) {
		case models.UsableItem:
			switch kind.Command {
			case models.UsableShoutout:
				if req.Target == 0 {
					return errs.New(errs.CodeInvalidInput, "For this item you must specify a target user (`target:@User`).")
				}
				target := doc.Account(key(req.Target))
				u.Items[item.ID] = count - 1
				u.ShoutoutsGiven++
				target.ShoutoutsReceived++
				out.TargetID = req.Target
			case models.UsableRoast:
				out.TargetID = req.Target
				if out.TargetID == 0 {
					out.TargetID = req.UserID
				}
				target := doc.Account(key(out.TargetID))
				u.Items[item.ID] = count - 1
				u.RoastsGiven++
				target.RoastsReceived++
				out.RoastLine = RoastLines[s.pick(len(RoastLines))]
			default:
				return errs.New(errs.CodeInvalidInput, "This item does not have a special use implemented yet.")
			}
		case models.TicketItem:
		default:
			return errs.New(errs.CodeInvalidInput, "This item does not have a special use implemented yet.")
		}
		out.Remaining = u.Items[item.ID]
		return nil
	})
	if err != nil {
		return UseResult{}, err
	}

	logger.LogShop("Item used",
		slog.String("user_id", uid),
		slog.String("item_id", item.ID),
		slog.String("target_id", out.TargetID.String()),
	)
	return out, nil
}

// Motivate returns a random motivational line.
func (s *Service) Motivate() string {
	return MotivationLines[s.pick(len(MotivationLines))]
}
