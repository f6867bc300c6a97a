package challenge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/utils"
)

// templateSeedStride keeps the challenge picker's seed stream out of phase
// with the shop rotation's, which walks seed+i from the same date key.
const templateSeedStride = 1543

// pickAttemptFactor bounds the duplicate-skip walk before the deterministic
// fill kicks in.
const pickAttemptFactor = 4

// PickDaily selects count templates from the pool for the given day. The
// result is the same for every caller and every call on that day.
func PickDaily(pool *Pool, key domain.DateKey, count int) []domain.Challenge {
	m := len(pool.Templates)
	if m == 0 || count <= 0 {
		return nil
	}
	if count > m {
		count = m
	}

	base := int(key) * templateSeedStride
	chosen := make(map[string]bool, count)
	picked := make([]domain.Challenge, 0, count)

	maxAttempts := pickAttemptFactor * m
	for i := 0; i < maxAttempts && len(picked) < count; i++ {
		tpl := pool.Templates[utils.SeededIndex(base+i, m)]
		if chosen[tpl.Key] {
			continue
		}
		chosen[tpl.Key] = true
		picked = append(picked, instantiate(tpl, key))
	}
	for i := 0; len(picked) < count && i < m; i++ {
		tpl := pool.Templates[i]
		if chosen[tpl.Key] {
			continue
		}
		chosen[tpl.Key] = true
		picked = append(picked, instantiate(tpl, key))
	}
	return picked
}

func instantiate(tpl domain.ChallengeTemplate, key domain.DateKey) domain.Challenge {
	return domain.Challenge{
		ID:          ChallengeID(key, tpl.Key),
		DateKey:     key,
		Title:       tpl.Title,
		Description: tpl.Description,
		Type:        tpl.Type,
		Goal:        tpl.Goal,
		Target:      tpl.Target,
		Reward:      tpl.Reward,
		Difficulty:  tpl.Difficulty,
		ExpiresAt:   key.Date().AddDate(0, 0, 1),
	}
}

// ChallengeID derives the stable instance id for a template on a given day,
// e.g. "20250615:play-three".
func ChallengeID(key domain.DateKey, templateKey string) string {
	return fmt.Sprintf("%d:%s", int(key), templateKey)
}

// ParseChallengeID recovers the date key embedded in a challenge id. The
// second return is false when the id does not carry a valid key.
func ParseChallengeID(id string) (domain.DateKey, bool) {
	sep := strings.IndexByte(id, ':')
	if sep <= 0 || sep == len(id)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(id[:sep])
	if err != nil || n <= 0 {
		return 0, false
	}
	return domain.DateKey(n), true
}
