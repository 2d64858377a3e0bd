package component

import "github.com/go-gl/mathgl/mgl64"

// KillVolume is an axis-aligned box that sends anything with a SpawnPoint
// back to it.
type KillVolume struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

func (k KillVolume) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < k.Min[i] || p[i] > k.Max[i] {
			return false
		}
	}
	return true
}

var KillVolumeComponent = NewComponent[KillVolume]()

// SpawnPoint stores where an entity respawns.
type SpawnPoint struct {
	Position mgl64.Vec3
	Yaw      float64
}

var SpawnPointComponent = NewComponent[SpawnPoint]()
