package engine

import "sort"

type HandType int

const (
	HandInvalid HandType = iota
	HandSingle
	HandPair
	HandTriple
	HandBomb
	HandRocket
	HandStraight
	HandStraightFlush
	HandAirplane
	HandFourWithKickers
	HandThreeWithKicker
)

func (t HandType) String() string {
	switch t {
	case HandSingle:
		return "单牌"
	case HandPair:
		return "对子"
	case HandTriple:
		return "三张"
	case HandBomb:
		return "炸弹"
	case HandRocket:
		return "王炸"
	case HandStraight:
		return "顺子"
	case HandStraightFlush:
		return "同花顺"
	case HandAirplane:
		return "飞机"
	case HandFourWithKickers:
		return "四带二"
	case HandThreeWithKicker:
		return "三带一"
	default:
		return "无效"
	}
}

const rocketStrength = 20

// Hand is the classification of a played card set: its type and a
// strength comparable within that type.
type Hand struct {
	Type     HandType
	Strength int
}

func (h Hand) Valid() bool {
	return h.Type != HandInvalid
}

// Classify determines whether a card set forms a legal combination.
// Sets of size 1..4 are matched by exact-size rules; larger sets walk
// the priority chain straight/straight-flush, airplane, four-with-
// kickers, three-with-kicker. Later rules are deliberately permissive
// catch-alls: kicker counts are not validated, and straights do not
// exclude 2s or jokers from a run.
func Classify(cards []Card) Hand {
	switch len(cards) {
	case 0:
		return Hand{}
	case 1:
		return Hand{Type: HandSingle, Strength: cards[0].Value}
	case 2:
		return classifyPairOrRocket(cards)
	case 3:
		if cards[0].Value == cards[1].Value && cards[1].Value == cards[2].Value {
			return Hand{Type: HandTriple, Strength: cards[0].Value}
		}
		return Hand{}
	case 4:
		if allEqualValue(cards) {
			return Hand{Type: HandBomb, Strength: cards[0].Value + 10}
		}
		// Four cards are bomb-or-nothing; the three-with-kicker
		// catch-all only applies to larger sets.
		return Hand{}
	}

	if h := classifyRun(cards); h.Valid() {
		return h
	}
	counts := valueCounts(cards)
	if h := classifyAirplane(cards, counts); h.Valid() {
		return h
	}
	if h := classifyFourWithKickers(cards, counts); h.Valid() {
		return h
	}
	return classifyThreeWithKicker(cards, counts)
}

func classifyPairOrRocket(cards []Card) Hand {
	a, b := cards[0].Value, cards[1].Value
	if (a == ValueSmallJoker && b == ValueBigJoker) || (a == ValueBigJoker && b == ValueSmallJoker) {
		return Hand{Type: HandRocket, Strength: rocketStrength}
	}
	if a == b {
		return Hand{Type: HandPair, Strength: a}
	}
	return Hand{}
}

// classifyRun matches contiguous ascending runs of distinct values. A
// run whose cards all share one suit upgrades to a straight-flush.
func classifyRun(cards []Card) Hand {
	values := make([]int, len(cards))
	for i, c := range cards {
		values[i] = c.Value
	}
	sort.Ints(values)
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]+1 {
			return Hand{}
		}
	}

	strength := values[len(values)-1]
	suit := cards[0].Suit
	flush := true
	for _, c := range cards[1:] {
		if c.Suit != suit {
			flush = false
			break
		}
	}
	if flush {
		return Hand{Type: HandStraightFlush, Strength: strength + 5}
	}
	return Hand{Type: HandStraight, Strength: strength}
}

func classifyAirplane(cards []Card, counts map[int]int) Hand {
	if len(cards) < 6 {
		return Hand{}
	}
	triplets := []int{}
	for v, n := range counts {
		if n == 3 {
			triplets = append(triplets, v)
		}
	}
	if len(triplets) < 2 {
		return Hand{}
	}
	sort.Ints(triplets)
	for i := 1; i < len(triplets); i++ {
		if triplets[i] != triplets[i-1]+1 {
			return Hand{}
		}
	}
	return Hand{Type: HandAirplane, Strength: triplets[len(triplets)-1]}
}

func classifyFourWithKickers(cards []Card, counts map[int]int) Hand {
	if len(cards) < 6 {
		return Hand{}
	}
	quad, found := 0, 0
	for v, n := range counts {
		if n == 4 {
			quad = v
			found++
		}
	}
	if found != 1 {
		return Hand{}
	}
	return Hand{Type: HandFourWithKickers, Strength: quad + 8}
}

func classifyThreeWithKicker(cards []Card, counts map[int]int) Hand {
	if len(cards) < 4 {
		return Hand{}
	}
	triple, found := 0, 0
	for v, n := range counts {
		if n == 3 {
			triple = v
			found++
		}
	}
	if found != 1 {
		return Hand{}
	}
	return Hand{Type: HandThreeWithKicker, Strength: triple + 3}
}

// Compare orders two hands. ok is false when the hands have different
// types and neither is a rocket; such pairs have no defined relation.
// A rocket beats any other hand regardless of type.
func Compare(a, b Hand) (cmp int, ok bool) {
	if a.Type == b.Type {
		return a.Strength - b.Strength, true
	}
	if a.Type == HandRocket {
		return 1, true
	}
	if b.Type == HandRocket {
		return -1, true
	}
	return 0, false
}

func allEqualValue(cards []Card) bool {
	for _, c := range cards[1:] {
		if c.Value != cards[0].Value {
			return false
		}
	}
	return true
}

func valueCounts(cards []Card) map[int]int {
	counts := make(map[int]int, len(cards))
	for _, c := range cards {
		counts[c.Value]++
	}
	return counts
}
