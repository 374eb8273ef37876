package user

// Role is stored as its lowercase name. Privilege grows with the level:
// admin implies editor implies author; subscriber holds none of them.
type Role string

const (
	RoleSubscriber Role = "subscriber"
	RoleAuthor     Role = "author"
	RoleEditor     Role = "editor"
	RoleAdmin      Role = "admin"

	DefaultRole = RoleAuthor
)

// Level is the ordered privilege of a role. The zero value is below every role.
type Level int

const (
	LevelNone Level = iota
	LevelSubscriber
	LevelAuthor
	LevelEditor
	LevelAdmin
)

func (r Role) Level() Level {
	switch r {
	case RoleSubscriber:
		return LevelSubscriber
	case RoleAuthor:
		return LevelAuthor
	case RoleEditor:
		return LevelEditor
	case RoleAdmin:
		return LevelAdmin
	default:
		return LevelNone
	}
}

func (r Role) Valid() bool {
	return r.Level() != LevelNone
}

// HasPrivilege reports whether role meets the required level.
// Unknown roles never pass, even when nothing beyond LevelNone is required.
func HasPrivilege(role Role, required Level) bool {
	lvl := role.Level()
	if lvl == LevelNone {
		return false
	}
	return lvl >= required
}

func (l Level) String() string {
	switch l {
	case LevelSubscriber:
		return string(RoleSubscriber)
	case LevelAuthor:
		return string(RoleAuthor)
	case LevelEditor:
		return string(RoleEditor)
	case LevelAdmin:
		return string(RoleAdmin)
	default:
		return "none"
	}
}
