package gesture

// Band is the vertical extent of one visible track on screen.
type Band struct {
	TrackID string
	Top     int // absolute Y of the band's first row
	Height  int // rows
}

// TrackLayout maps absolute pointer Y positions to tracks. The app rebuilds
// it whenever tracks or the panel geometry change.
type TrackLayout struct {
	Bands []Band
}

// TrackAt returns the track whose band contains y. Positions above the
// first band clamp to the first track, positions below the last band clamp
// to the last. Returns false only when there are no bands at all.
func (l TrackLayout) TrackAt(y int) (string, bool) {
	if len(l.Bands) == 0 {
		return "", false
	}
	if y < l.Bands[0].Top {
		return l.Bands[0].TrackID, true
	}
	for _, b := range l.Bands {
		if y >= b.Top && y < b.Top+b.Height {
			return b.TrackID, true
		}
	}
	return l.Bands[len(l.Bands)-1].TrackID, true
}

// bandHeight returns the height of the band owning the given track, or 0.
func (l TrackLayout) bandHeight(trackID string) int {
	for _, b := range l.Bands {
		if b.TrackID == trackID {
			return b.Height
		}
	}
	return 0
}
