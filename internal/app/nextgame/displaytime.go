package nextgame

import (
	"log/slog"
	"time"

	domaingames "github.com/preston-bernstein/nba-next-game-service/internal/domain/games"
	"github.com/preston-bernstein/nba-next-game-service/internal/logging"
)

// TimeUnavailable is shown when a game's start cannot be read at all.
const TimeUnavailable = "Time TBD"

// DefaultDisplayTimezone is the zone real tip-off times are rendered in.
const DefaultDisplayTimezone = "America/New_York"

const displayLayout = "3:04 PM MST"

// PlaceholderTimes stand in for tip-offs the upstream only knows by date.
// Rotating through them by window index keeps a list of such games from all reading the same time.
var PlaceholderTimes = [...]string{
	"6:00 PM ET",
	"6:30 PM ET",
	"7:00 PM ET",
	"7:30 PM ET",
	"8:00 PM ET",
	"8:30 PM ET",
	"9:00 PM ET",
	"9:30 PM ET",
}

// Placeholder returns the placeholder for a window index. Any integer maps into range.
func Placeholder(windowIndex int) string {
	n := len(PlaceholderTimes)
	return PlaceholderTimes[((windowIndex%n)+n)%n]
}

// SentinelFunc reports whether a start instant is a date-only placeholder rather than a real tip-off.
type SentinelFunc func(time.Time) bool

// IsMidnightUTC treats an exact UTC midnight as "time not yet announced".
// A real 00:00 UTC tip-off (7 PM ET) is indistinguishable and gets a placeholder too.
func IsMidnightUTC(t time.Time) bool {
	u := t.UTC()
	return u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0
}

// DisplayTimeResolver renders a game's start for display.
type DisplayTimeResolver struct {
	loc        *time.Location
	isSentinel SentinelFunc
	logger     *slog.Logger
}

// NewDisplayTimeResolver builds a resolver. A nil loc means DefaultDisplayTimezone (UTC if tzdata is
// missing) and a nil sentinel means IsMidnightUTC.
func NewDisplayTimeResolver(loc *time.Location, sentinel SentinelFunc, logger *slog.Logger) *DisplayTimeResolver {
	if loc == nil {
		var err error
		if loc, err = time.LoadLocation(DefaultDisplayTimezone); err != nil {
			loc = time.UTC
		}
	}
	if sentinel == nil {
		sentinel = IsMidnightUTC
	}
	return &DisplayTimeResolver{loc: loc, isSentinel: sentinel, logger: logger}
}

// Resolve returns a never-empty display string: the local tip-off time, a rotated placeholder for
// sentinel starts, or TimeUnavailable.
func (r *DisplayTimeResolver) Resolve(game domaingames.Game, windowIndex int) string {
	start, err := game.StartInstant()
	if err != nil {
		logging.Warn(r.logger, "unreadable game start time",
			logging.FieldGameID, game.ID,
			"start_time", game.StartTime,
			"err", err,
		)
		return TimeUnavailable
	}
	if r.isSentinel(start) {
		return Placeholder(windowIndex)
	}
	return start.In(r.loc).Format(displayLayout)
}
