package render

// Diff computes the patch that turns prev into next. Upserts follow next's
// order and removals follow prev's order.
func Diff(prev, next Scene) Patch {
	p := Patch{
		CategoryID:      next.CategoryID,
		Width:           next.Width,
		Height:          next.Height,
		Resized:         prev.Width != next.Width || prev.Height != next.Height,
		Champion:        next.Champion,
		ChampionChanged: prev.Champion != next.Champion,
	}
	p.Headers, p.HeadersRemoved = diffByID(prev.Headers, next.Headers, func(h Header) string { return h.ID })
	p.Upserted, p.Removed = diffByID(prev.Nodes, next.Nodes, func(n Node) string { return n.ID })
	p.ConnectorsUpserted, p.ConnectorsRemoved = diffByID(prev.Connectors, next.Connectors, func(c Connector) string { return c.ID })
	return p
}

// Empty reports whether applying the patch changes nothing.
func (p Patch) Empty() bool {
	return !p.Resized && !p.ChampionChanged &&
		len(p.Headers) == 0 && len(p.HeadersRemoved) == 0 &&
		len(p.Upserted) == 0 && len(p.Removed) == 0 &&
		len(p.ConnectorsUpserted) == 0 && len(p.ConnectorsRemoved) == 0
}

func diffByID[T comparable](prev, next []T, id func(T) string) (upserted []T, removed []string) {
	old := make(map[string]T, len(prev))
	for _, item := range prev {
		old[id(item)] = item
	}
	seen := make(map[string]bool, len(next))
	for _, item := range next {
		key := id(item)
		seen[key] = true
		if before, ok := old[key]; !ok || before != item {
			upserted = append(upserted, item)
		}
	}
	for _, item := range prev {
		if key := id(item); !seen[key] {
			removed = append(removed, key)
		}
	}
	return upserted, removed
}
