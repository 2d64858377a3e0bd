package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()

type TargetTag struct{}

var TargetTagComponent = NewComponent[TargetTag]()

// Name is the prefab name an entity was built from.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
