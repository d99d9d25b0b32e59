package auth

// Permission constants for permafrost's own models. Host applications define
// their permissions in their own namespaces; these cover managing roles
// through this library and are the ones category configurations typically
// reference.
const (
	// PermViewRole allows viewing roles and their permissions.
	PermViewRole = "permafrost.view_role"
	// PermAddRole allows creating new roles.
	PermAddRole = "permafrost.add_role"
	// PermChangeRole allows renaming roles and toggling their optional permissions.
	PermChangeRole = "permafrost.change_role"
	// PermDeleteRole allows deleting roles.
	PermDeleteRole = "permafrost.delete_role"

	// PermAddUserToRole allows managing role membership.
	PermAddUserToRole = "permafrost.add_user_to_role"
)
