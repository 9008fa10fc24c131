package rbac

// Capability identifiers used across the API surface.
const (
	PermPagesView    = "pages.view"
	PermPagesCreate  = "pages.create"
	PermPagesEdit    = "pages.edit"
	PermPagesDelete  = "pages.delete"
	PermPagesPublish = "pages.publish"

	PermMediaView   = "media.view"
	PermMediaUpload = "media.upload"
	PermMediaDelete = "media.delete"

	PermUsersView   = "users.view"
	PermUsersCreate = "users.create"
	PermUsersEdit   = "users.edit"
	PermUsersDelete = "users.delete"

	PermRolesView   = "roles.view"
	PermRolesManage = "roles.manage"

	PermSettingsView = "settings.view"
	PermSettingsEdit = "settings.edit"

	PermLogsView = "logs.view"
)

// CatalogEntry describes one assignable permission.
type CatalogEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Catalog lists every assignable permission. This is the vocabulary role
// editors pick from; the wildcard entries are not listed because they are
// granted by editing a role's raw permission list.
func Catalog() []CatalogEntry {
	return []CatalogEntry{
		{ID: PermPagesView, Name: "View pages", Category: "Pages"},
		{ID: PermPagesCreate, Name: "Create pages", Category: "Pages"},
		{ID: PermPagesEdit, Name: "Edit pages", Category: "Pages"},
		{ID: PermPagesDelete, Name: "Delete pages", Category: "Pages"},
		{ID: PermPagesPublish, Name: "Publish pages", Category: "Pages"},
		{ID: PermMediaView, Name: "View media", Category: "Media"},
		{ID: PermMediaUpload, Name: "Upload media", Category: "Media"},
		{ID: PermMediaDelete, Name: "Delete media", Category: "Media"},
		{ID: PermUsersView, Name: "View users", Category: "Users"},
		{ID: PermUsersCreate, Name: "Create users", Category: "Users"},
		{ID: PermUsersEdit, Name: "Edit users", Category: "Users"},
		{ID: PermUsersDelete, Name: "Delete users", Category: "Users"},
		{ID: PermRolesView, Name: "View roles", Category: "Roles"},
		{ID: PermRolesManage, Name: "Manage roles", Category: "Roles"},
		{ID: PermSettingsView, Name: "View settings", Category: "Settings"},
		{ID: PermSettingsEdit, Name: "Edit settings", Category: "Settings"},
		{ID: PermLogsView, Name: "View activity logs", Category: "Logs"},
	}
}
