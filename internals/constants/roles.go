package constants

// Role global yang dikenal sistem luar (dibawa lewat klaim JWT "roles").
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleManager    = "MANAGER"
	RoleUser       = "USER"
)

// Kode permission objectives (cek granular dilakukan sistem luar;
// konstanta di sini dipakai untuk pesan error & dokumentasi route).
const (
	PermObjectivesGlobalDistribute   = "objectives.global.distribute"
	PermObjectivesBUDistribute       = "objectives.bu.distribute"
	PermObjectivesDivisionDistribute = "objectives.division.distribute"
	PermObjectivesGradeDistribute    = "objectives.grade.distribute"
	PermObjectivesCreate             = "objectives:create"
	PermObjectivesUpdate             = "objectives:update"
	PermObjectivesDelete             = "objectives:delete"
)
