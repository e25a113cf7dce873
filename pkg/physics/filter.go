package physics

// CollisionGroup is a bit set used for group/mask collision filtering.
type CollisionGroup uint32

const (
	GroupDefault    CollisionGroup = 1 << 0
	GroupStatic     CollisionGroup = 1 << 1
	GroupKinematic  CollisionGroup = 1 << 2
	GroupDebris     CollisionGroup = 1 << 3
	GroupSensor     CollisionGroup = 1 << 4
	GroupShip       CollisionGroup = 1 << 5
	GroupProjectile CollisionGroup = 1 << 6
	GroupAll        CollisionGroup = ^CollisionGroup(0)
)

// Collides reports whether a filter pair accepts each other. The test is
// symmetric: each side's group must be in the other's mask.
func Collides(groupA, maskA, groupB, maskB CollisionGroup) bool {
	return groupA&maskB != 0 && groupB&maskA != 0
}

// FiltersCollide applies Collides to two collision objects. A nil object
// never collides.
func FiltersCollide(a, b CollisionObject) bool {
	if a == nil || b == nil {
		return false
	}
	return Collides(a.FilterGroup(), a.FilterMask(), b.FilterGroup(), b.FilterMask())
}
