package aggregate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fieldops/pulse/pkg/extract"
)

var isoDurationRe = regexp.MustCompile(
	`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`,
)

// parseCallDuration reads the upstream call duration, which arrives either
// as an ISO-8601 duration ("PT2M30S") or a clock string ("0:02:30"). The
// extractor's string default means "no duration recorded" and maps to zero.
// Anything else malformed is fatal.
func parseCallDuration(raw string) (time.Duration, error) {
	if raw == noDataSentinel {
		return 0, nil
	}

	if m := isoDurationRe.FindStringSubmatch(raw); m != nil && raw != "P" {
		var d time.Duration
		if m[1] != "" {
			days, _ := strconv.Atoi(m[1])
			d += time.Duration(days) * 24 * time.Hour
		}
		if m[2] != "" {
			hours, _ := strconv.Atoi(m[2])
			d += time.Duration(hours) * time.Hour
		}
		if m[3] != "" {
			mins, _ := strconv.Atoi(m[3])
			d += time.Duration(mins) * time.Minute
		}
		if m[4] != "" {
			secs, _ := strconv.ParseFloat(m[4], 64)
			d += time.Duration(secs * float64(time.Second))
		}
		return d, nil
	}

	if parts := strings.Split(raw, ":"); len(parts) == 3 {
		hours, err1 := strconv.Atoi(parts[0])
		mins, err2 := strconv.Atoi(parts[1])
		secs, err3 := strconv.ParseFloat(parts[2], 64)
		if err1 == nil && err2 == nil && err3 == nil {
			return time.Duration(hours)*time.Hour +
				time.Duration(mins)*time.Minute +
				time.Duration(secs*float64(time.Second)), nil
		}
	}

	return 0, fmt.Errorf("malformed call duration %q", raw)
}

var noDataSentinel = func() string {
	v, _ := extract.DefaultFor(extract.KindString)
	return v.(string)
}()
