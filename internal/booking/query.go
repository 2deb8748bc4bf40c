package booking

import (
	"net/http"
	"time"

	"github.com/Masterminds/squirrel"

	"shareit/internal/pkg/apperror"
	"shareit/internal/pkg/request"
)

// State is the classifier filter for listing bookings: two filters match on
// status, three partition the timeline around "now", ALL matches everything.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState validates s against the closed filter set.
func ParseState(s string) (State, error) {
	st := State(s)
	if _, ok := stateConds[st]; !ok {
		return "", apperror.Newf(apperror.KindUnknownEnum, http.StatusBadRequest, "Unknown state: %s", s)
	}
	return st, nil
}

// stateConds maps each filter onto the WHERE clause it contributes, keyed so
// that one builder serves every (role, state, paging) combination. CURRENT
// includes both boundary instants; FUTURE and PAST are strict.
var stateConds = map[State]func(now time.Time) squirrel.Sqlizer{
	StateAll: func(time.Time) squirrel.Sqlizer { return nil },
	StateWaiting: func(time.Time) squirrel.Sqlizer {
		return squirrel.Eq{"b.status": StatusWaiting}
	},
	StateRejected: func(time.Time) squirrel.Sqlizer {
		return squirrel.Eq{"b.status": StatusRejected}
	},
	StateCurrent: func(now time.Time) squirrel.Sqlizer {
		return squirrel.And{
			squirrel.LtOrEq{"b.start_date": now},
			squirrel.GtOrEq{"b.end_date": now},
		}
	},
	StateFuture: func(now time.Time) squirrel.Sqlizer {
		return squirrel.Gt{"b.start_date": now}
	},
	StatePast: func(now time.Time) squirrel.Sqlizer {
		return squirrel.Lt{"b.end_date": now}
	},
}

// Query is one classifier request: a state filter evaluated at a fixed
// instant, optionally paged.
type Query struct {
	State State
	Now   time.Time
	Page  *request.Page
}

const bookingColumns = "b.id, b.start_date, b.end_date, b.item_id, i.name, b.booker_id, u.name, b.status, b.created_at"

// buildListQuery assembles the single parametrized list query: the scope
// condition selects the candidate set for the role (booker id, or the owned
// item-id set), the state adds its predicate, ordering is always start
// descending, and paging is a page-aligned LIMIT/OFFSET.
func buildListQuery(scope squirrel.Sqlizer, q Query) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	sb := psql.Select(bookingColumns).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Join("users u ON b.booker_id = u.id").
		Where(scope)

	if cond := stateConds[q.State](q.Now); cond != nil {
		sb = sb.Where(cond)
	}

	sb = sb.OrderBy("b.start_date DESC")

	if q.Page != nil {
		sb = sb.Limit(uint64(q.Page.Size)).Offset(uint64(q.Page.Offset()))
	}

	return sb
}
