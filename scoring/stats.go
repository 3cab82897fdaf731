package scoring

// Stats counts the notable holes of a round.
type Stats struct {
	// Eagles also absorbs albatrosses and anything better.
	Eagles         int `json:"eagles"`
	Birdies        int `json:"birdies"`
	Pars           int `json:"pars"`
	Bogeys         int `json:"bogeys"`
	DoublesOrWorse int `json:"doublesOrWorse"`
	ThreePutts     int `json:"threePutts"`
	Rings          int `json:"rings"`
}

// Add returns the element-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Eagles:         s.Eagles + o.Eagles,
		Birdies:        s.Birdies + o.Birdies,
		Pars:           s.Pars + o.Pars,
		Bogeys:         s.Bogeys + o.Bogeys,
		DoublesOrWorse: s.DoublesOrWorse + o.DoublesOrWorse,
		ThreePutts:     s.ThreePutts + o.ThreePutts,
		Rings:          s.Rings + o.Rings,
	}
}

// CollectStats derives the statistics of one round. Entries without strokes
// add nothing; the three-putt and ring flags count independently of the score.
// Entries for holes missing from holes contribute their flags only.
func CollectStats(entries []ScoreEntry, holes []Hole) Stats {
	pars := make(map[int]int, len(holes))
	for _, h := range holes {
		pars[h.Number] = h.Par
	}

	var s Stats
	for _, e := range entries {
		if e.Strokes <= 0 {
			continue
		}
		if e.ThreePutt {
			s.ThreePutts++
		}
		if e.Ring {
			s.Rings++
		}

		par, ok := pars[e.Hole]
		if !ok {
			continue
		}
		switch diff := e.Strokes - par; {
		case diff <= -2:
			s.Eagles++
		case diff == -1:
			s.Birdies++
		case diff == 0:
			s.Pars++
		case diff == 1:
			s.Bogeys++
		default:
			s.DoublesOrWorse++
		}
	}
	return s
}
