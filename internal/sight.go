package internal

import (
	"github.com/osuushi/visibility/internal/geom"
	"github.com/osuushi/visibility/shape"
)

// NoIgnore disables the ignored obstacle in IsVisible. Obstacle ids are never
// negative; negative ids belong to the scene box, which never blocks anyway.
const NoIgnore = -1

// IsVisible casts a single ray from observer towards target and reports
// whether any obstacle edge stops it first. The edges of obstacle ignoreID
// are skipped, so a shape never hides its own centre.
func IsVisible(obstacles []shape.Shape, observer, target geom.Point, ignoreID int, opts Options) (visible bool, err error) {
	defer func() {
		if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
			visible = false
			err = recoveredErr
		}
	}()

	if !observer.IsFinite() {
		throwf(ErrNonFinite, "observer %v", observer)
	}
	if !target.IsFinite() {
		throwf(ErrNonFinite, "target %v", target)
	}

	distance := geom.Dist(observer, target)
	if distance < AngleTolerance {
		return true, nil
	}
	angle := geom.Angle(observer, target)

	box := SceneBox(obstacles, observer, []geom.Point{target}, opts.margin())
	for _, segment := range BuildSegments(obstacles, observer, box, opts.MaxSegments) {
		if segment.IsBoundary() || (ignoreID >= 0 && segment.ObstacleID == ignoreID) {
			continue
		}
		wall := geom.RaySegment(observer, angle, segment.P1, segment.P2)
		if wall < geom.NoHit && wall < distance-SightTolerance {
			return false, nil
		}
	}
	return true, nil
}
