package models

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/julianstephens/habitrack/internal/constants"
)

// MapToLayout converts settings key-value pairs to a Layout.
// Unknown keys are ignored so other settings can share the table. Keys with
// non-numeric values are skipped; the returned layout holds every readable
// key and the error lists the rest.
func MapToLayout(data map[string]string) (Layout, error) {
	layout := Layout{Columns: make(map[string]Column)}
	var errs []error

	for key, value := range data {
		var dst *int
		switch key {
		case constants.SettingWindowWidth:
			dst = &layout.Window.Width
		case constants.SettingWindowHeight:
			dst = &layout.Window.Height
		case constants.SettingWindowX:
			dst = &layout.Window.X
		case constants.SettingWindowY:
			dst = &layout.Window.Y
		}

		id, field, isColumn := parseColumnKey(key)
		if dst == nil && !isColumn {
			continue
		}

		n, err := strconv.Atoi(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("parsing %s: %w", key, err))
			continue
		}
		if dst != nil {
			*dst = n
			continue
		}

		col := layout.Columns[id]
		switch field {
		case constants.ColumnWidthSuffix:
			col.Width = n
		case constants.ColumnPosSuffix:
			col.Position = n
		}
		layout.Columns[id] = col
	}
	return layout, errors.Join(errs...)
}

// LayoutToMap converts a Layout to settings key-value pairs
func LayoutToMap(layout Layout) map[string]string {
	m := map[string]string{
		constants.SettingWindowWidth:  strconv.Itoa(layout.Window.Width),
		constants.SettingWindowHeight: strconv.Itoa(layout.Window.Height),
		constants.SettingWindowX:      strconv.Itoa(layout.Window.X),
		constants.SettingWindowY:      strconv.Itoa(layout.Window.Y),
	}
	for id, col := range layout.Columns {
		m[ColumnKey(id, constants.ColumnWidthSuffix)] = strconv.Itoa(col.Width)
		m[ColumnKey(id, constants.ColumnPosSuffix)] = strconv.Itoa(col.Position)
	}
	return m
}

// ColumnKey builds the settings key for one column field
func ColumnKey(id, field string) string {
	return constants.ColumnKeyPrefix + id + "." + field
}

func parseColumnKey(key string) (id, field string, ok bool) {
	rest, found := strings.CutPrefix(key, constants.ColumnKeyPrefix)
	if !found {
		return "", "", false
	}
	i := strings.LastIndex(rest, ".")
	if i <= 0 || i == len(rest)-1 {
		return "", "", false
	}
	id, field = rest[:i], rest[i+1:]
	if field != constants.ColumnWidthSuffix && field != constants.ColumnPosSuffix {
		return "", "", false
	}
	return id, field, true
}

// ApplyDefaultLayout fills in missing window and column values.
// Positions are only defaulted for columns that have never been placed.
func ApplyDefaultLayout(layout *Layout) {
	if layout.Window.Width <= 0 {
		layout.Window.Width = constants.DefaultWindowWidth
	}
	if layout.Window.Height <= 0 {
		layout.Window.Height = constants.DefaultWindowHeight
	}
	if layout.Columns == nil {
		layout.Columns = make(map[string]Column)
	}

	for i, id := range constants.DefaultColumnOrder {
		col, known := layout.Columns[id]
		if col.Width <= 0 {
			col.Width = constants.DefaultColumnWidths[id]
		}
		if !known {
			col.Position = i
		}
		layout.Columns[id] = col
	}
}

// OrderedColumns returns column ids sorted by position, ties broken by id
func (l Layout) OrderedColumns() []string {
	ids := make([]string, 0, len(l.Columns))
	for id := range l.Columns {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		pi, pj := l.Columns[ids[i]].Position, l.Columns[ids[j]].Position
		if pi != pj {
			return pi < pj
		}
		return ids[i] < ids[j]
	})
	return ids
}
