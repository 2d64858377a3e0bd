package replay

import "io"

// Summary tallies a match from its frames.
type Summary struct {
	MatchID  string         `yaml:"match_id"`
	Arena    string         `yaml:"arena"`
	Ticks    uint64         `yaml:"ticks"`
	Duration float64        `yaml:"duration"`
	Shots    int            `yaml:"shots"`
	Hits     int            `yaml:"hits"`
	Misses   int            `yaml:"misses"`
	Expired  int            `yaml:"expired"`
	Kills    int            `yaml:"kills"`
	Deaths   int            `yaml:"deaths"`
	Respawns int            `yaml:"respawns"`
	Alerts   int            `yaml:"alerts"`
	Damage   float64        `yaml:"damage"`
	ByEntity map[string]int `yaml:"kills_by_entity,omitempty"`
}

func NewSummary(h Header) *Summary {
	return &Summary{MatchID: h.MatchID, Arena: h.Arena, ByEntity: make(map[string]int)}
}

// Add folds one frame into the tally. Contacts that dealt no damage, such
// as walls, count as misses.
func (s *Summary) Add(f Frame) {
	if f.Tick > s.Ticks {
		s.Ticks = f.Tick
	}
	if f.Time > s.Duration {
		s.Duration = f.Time
	}
	for _, evt := range f.Events {
		switch evt.Kind {
		case "fire":
			s.Shots++
		case "hit":
			if evt.Damage <= 0 && !evt.Flag {
				s.Misses++
				continue
			}
			s.Hits++
			s.Damage += evt.Damage
			if evt.Flag {
				s.Kills++
			}
		case "expire":
			s.Expired++
		case "death":
			s.Deaths++
			if evt.Other != "" {
				s.ByEntity[evt.Other]++
			}
		case "respawn":
			s.Respawns++
		case "alert":
			if evt.Flag {
				s.Alerts++
			}
		}
	}
}

// Accuracy is hits over shots, or zero before the first shot.
func (s *Summary) Accuracy() float64 {
	if s.Shots == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Shots)
}

// Summarize reads every remaining frame from r.
func Summarize(r *Reader) (*Summary, error) {
	s := NewSummary(r.Header)
	for {
		f, err := r.Next()
		if err != nil {
			if err == io.EOF {
				return s, nil
			}
			return s, err
		}
		s.Add(f)
	}
}
