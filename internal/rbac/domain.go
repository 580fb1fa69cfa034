package rbac

import "time"

// Role represents a named bundle of permissions. Roles are seeded data; the
// application never creates them at runtime.
type Role struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Permission represents an atomic capability.
type Permission struct {
	ID   int64
	Name string
}

// Seeded role names.
const (
	RoleUser    = "user"
	RoleProUser = "pro_user"
	RoleAdmin   = "admin"
)

// Permission names for the users surface.
const (
	PermCreateUser = "create_user"
	PermUpdateUser = "update_user"
	PermDeleteUser = "delete_user"
)

// Permission names for the questions surface.
const (
	PermCreateQuestion       = "create_question"
	PermUpdateQuestion       = "update_question"
	PermDeleteQuestion       = "delete_question"
	PermAcceptAnswer         = "accept_answer"
	PermRevokeAcceptedAnswer = "revoke_accepted_answer"
	PermVoteQuestion         = "vote_question"
	PermRevokeVoteQuestion   = "revoke_vote_question"
)

// Permission names for the answers surface.
const (
	PermCreateAnswer     = "create_answer"
	PermUpdateAnswer     = "update_answer"
	PermDeleteAnswer     = "delete_answer"
	PermVoteAnswer       = "vote_answer"
	PermRevokeVoteAnswer = "revoke_vote_answer"
)

// Permission names for the tags surface.
const (
	PermCreateTag = "create_tag"
	PermDeleteTag = "delete_tag"
)

// AllPermissions lists every seeded permission name.
func AllPermissions() []string {
	return []string{
		PermCreateUser, PermUpdateUser, PermDeleteUser,
		PermCreateQuestion, PermUpdateQuestion, PermDeleteQuestion,
		PermAcceptAnswer, PermRevokeAcceptedAnswer,
		PermVoteQuestion, PermRevokeVoteQuestion,
		PermCreateAnswer, PermUpdateAnswer, PermDeleteAnswer,
		PermVoteAnswer, PermRevokeVoteAnswer,
		PermCreateTag, PermDeleteTag,
	}
}

// AdminOnlyPermissions are granted exclusively to the admin role.
func AdminOnlyPermissions() []string {
	return []string{PermDeleteUser}
}

// ProUserPermissions are granted to pro_user (and admin) but not to the
// default user role.
func ProUserPermissions() []string {
	return []string{
		PermVoteQuestion, PermRevokeVoteQuestion,
		PermVoteAnswer, PermRevokeVoteAnswer,
	}
}
