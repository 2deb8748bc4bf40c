package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/pkg/apperror"
	"shareit/internal/pkg/request"
)

func TestParseState(t *testing.T) {
	t.Run("Known States", func(t *testing.T) {
		for _, s := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
			st, err := ParseState(s)
			assert.NoError(t, err, "State %s should parse", s)
			assert.Equal(t, State(s), st)
		}
	})

	t.Run("Unknown State", func(t *testing.T) {
		_, err := ParseState("SOME")
		require.Error(t, err)
		assert.Equal(t, "Unknown state: SOME", err.Error())

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindUnknownEnum, appErr.Kind)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("Lowercase Is Unknown", func(t *testing.T) {
		_, err := ParseState("waiting")
		require.Error(t, err)
		assert.Equal(t, "Unknown state: waiting", err.Error())
	})
}

func TestBuildListQuery(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	scope := squirrel.Eq{"b.booker_id": "booker-1"}

	build := func(state State, page *request.Page) (string, []any) {
		sql, args, err := buildListQuery(scope, Query{State: state, Now: now, Page: page}).ToSql()
		require.NoError(t, err)
		return sql, args
	}

	t.Run("All States Share Base Shape", func(t *testing.T) {
		for _, state := range []State{StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected} {
			sql, _ := build(state, nil)
			assert.Contains(t, sql, "FROM bookings b", "state %s", state)
			assert.Contains(t, sql, "JOIN items i ON b.item_id = i.id", "state %s", state)
			assert.Contains(t, sql, "JOIN users u ON b.booker_id = u.id", "state %s", state)
			assert.Contains(t, sql, "b.booker_id = $1", "state %s", state)
			assert.Contains(t, sql, "ORDER BY b.start_date DESC", "state %s", state)
			assert.NotContains(t, sql, "LIMIT", "unpaged query for state %s", state)
		}
	})

	t.Run("ALL Adds No Predicate", func(t *testing.T) {
		_, args := build(StateAll, nil)
		assert.Len(t, args, 1, "only the scope should bind an argument")
	})

	t.Run("WAITING Filters Status", func(t *testing.T) {
		sql, args := build(StateWaiting, nil)
		assert.Contains(t, sql, "b.status = $2")
		require.Len(t, args, 2)
		assert.Equal(t, StatusWaiting, args[1])
	})

	t.Run("REJECTED Filters Status", func(t *testing.T) {
		sql, args := build(StateRejected, nil)
		assert.Contains(t, sql, "b.status = $2")
		require.Len(t, args, 2)
		assert.Equal(t, StatusRejected, args[1])
	})

	t.Run("CURRENT Includes Both Boundaries", func(t *testing.T) {
		sql, args := build(StateCurrent, nil)
		assert.Contains(t, sql, "b.start_date <= $2")
		assert.Contains(t, sql, "b.end_date >= $3")
		require.Len(t, args, 3)
		assert.Equal(t, now, args[1])
		assert.Equal(t, now, args[2])
	})

	t.Run("FUTURE Is Strict", func(t *testing.T) {
		sql, _ := build(StateFuture, nil)
		assert.Contains(t, sql, "b.start_date > $2")
	})

	t.Run("PAST Is Strict", func(t *testing.T) {
		sql, _ := build(StatePast, nil)
		assert.Contains(t, sql, "b.end_date < $2")
	})

	t.Run("Paged Query Aligns Offset", func(t *testing.T) {
		// from=25 size=10 selects page 2, which starts at element 20.
		sql, _ := build(StateAll, &request.Page{From: 25, Size: 10})
		assert.Contains(t, sql, "LIMIT 10")
		assert.Contains(t, sql, "OFFSET 20")
	})

	t.Run("First Page", func(t *testing.T) {
		sql, _ := build(StateWaiting, &request.Page{From: 0, Size: 5})
		assert.Contains(t, sql, "LIMIT 5")
		assert.Contains(t, sql, "OFFSET 0")
	})

	t.Run("Owner Scope Binds Item Set", func(t *testing.T) {
		ownerScope := squirrel.Eq{"b.item_id": []string{"item-1", "item-2"}}
		sql, args, err := buildListQuery(ownerScope, Query{State: StateAll, Now: now}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "b.item_id IN ($1,$2)")
		assert.Len(t, args, 2)
	})
}
