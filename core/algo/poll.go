package algo

import (
	"errors"
	"fmt"
	"sort"

	"github.com/huangsam/moodmixer/schema"
)

// Poll consensus rules.
const (
	minPollVotes       = 2
	consensusThreshold = 0.6
)

// ErrUnknownVibe is returned when a vote names a vibe that does not exist.
var ErrUnknownVibe = errors.New("unknown vibe")

// Poll collects one vibe vote per voter.
type Poll struct {
	votes  map[string]string
	voters []string // first-vote order
}

// NewPoll creates an empty poll.
func NewPoll() *Poll {
	return &Poll{votes: make(map[string]string)}
}

// Vote records or replaces the voter's choice.
func (p *Poll) Vote(voter, vibe string) error {
	if _, ok := schema.Vibes[vibe]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVibe, vibe)
	}
	if _, seen := p.votes[voter]; !seen {
		p.voters = append(p.voters, voter)
	}
	p.votes[voter] = vibe
	return nil
}

// Total returns the number of voters.
func (p *Poll) Total() int {
	return len(p.votes)
}

// Tally returns vote counts per vibe.
func (p *Poll) Tally() map[string]int {
	counts := make(map[string]int)
	for _, vibe := range p.votes {
		counts[vibe]++
	}
	return counts
}

// VibeCount is one row of a sorted tally.
type VibeCount struct {
	Vibe  string `json:"vibe"`
	Votes int    `json:"votes"`
}

// SortedTally returns every vibe with its votes, most votes first then by name.
func (p *Poll) SortedTally() []VibeCount {
	counts := p.Tally()
	out := make([]VibeCount, 0, len(schema.Vibes))
	for _, vibe := range schema.VibeNames() {
		out = append(out, VibeCount{Vibe: vibe, Votes: counts[vibe]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Votes > out[j].Votes })
	return out
}

// Consensus returns the winning vibe once at least two people voted and the
// leader holds 60% of the votes. Ties go to the vibe that was voted for first.
func (p *Poll) Consensus() (string, bool) {
	total := len(p.votes)
	if total < minPollVotes {
		return "", false
	}
	counts := p.Tally()
	leader, best := "", 0
	for _, voter := range p.voters {
		vibe := p.votes[voter]
		if counts[vibe] > best {
			leader, best = vibe, counts[vibe]
		}
	}
	if float64(best) >= float64(total)*consensusThreshold {
		return leader, true
	}
	return "", false
}

// Reset clears all votes.
func (p *Poll) Reset() {
	p.votes = make(map[string]string)
	p.voters = nil
}
