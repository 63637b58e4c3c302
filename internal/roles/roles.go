// Package roles defines the fixed role-to-permission table. The table is
// consulted by the permission middleware and by handlers deciding which
// actions to expose; the transfer state machine itself never checks roles.
package roles

import "tramex/internal/models"

// Permissions is the set of capabilities a role grants.
type Permissions struct {
	CanViewAllTransactions   bool `json:"can_view_all_transactions"`
	CanCreateTransactions    bool `json:"can_create_transactions"`
	CanValidateTransactions  bool `json:"can_validate_transactions"`
	CanCompleteTransactions  bool `json:"can_complete_transactions"`
	CanCancelTransactions    bool `json:"can_cancel_transactions"`
	CanEditTransactions      bool `json:"can_edit_transactions"`
	CanDeleteTransactions    bool `json:"can_delete_transactions"`
	CanViewReports           bool `json:"can_view_reports"`
	CanManageClients         bool `json:"can_manage_clients"`
	CanManageMerchandise     bool `json:"can_manage_merchandise"`
	CanManageParcels         bool `json:"can_manage_parcels"`
	CanManageUsers           bool `json:"can_manage_users"`
	CanViewAuditLog          bool `json:"can_view_audit_log"`
	CanManageBackups         bool `json:"can_manage_backups"`
}

var table = map[models.Role]Permissions{
	models.RoleAdmin: {
		CanViewAllTransactions:  true,
		CanCreateTransactions:   true,
		CanValidateTransactions: true,
		CanCompleteTransactions: true,
		CanCancelTransactions:   true,
		CanEditTransactions:     true,
		CanDeleteTransactions:   true,
		CanViewReports:          true,
		CanManageClients:        true,
		CanManageMerchandise:    true,
		CanManageParcels:        true,
		CanManageUsers:          true,
		CanViewAuditLog:         true,
		CanManageBackups:        true,
	},
	models.RoleSupervisor: {
		CanViewAllTransactions:  true,
		CanCreateTransactions:   true,
		CanValidateTransactions: true,
		CanCompleteTransactions: true,
		CanCancelTransactions:   true,
		CanEditTransactions:     true,
		CanViewReports:          true,
		CanManageClients:        true,
		CanManageMerchandise:    true,
		CanManageParcels:        true,
	},
	models.RoleOperator: {
		CanViewAllTransactions: true,
		CanCreateTransactions:  true,
		CanCancelTransactions:  true,
		CanManageClients:       true,
		CanManageParcels:       true,
	},
	models.RoleAuditor: {
		CanViewAllTransactions: true,
		CanViewReports:         true,
		CanViewAuditLog:        true,
	},
}

// For returns the permission set for a role. Unknown roles get no
// permissions.
func For(role models.Role) Permissions {
	return table[role]
}

// Valid reports whether role is one of the four staff roles.
func Valid(role models.Role) bool {
	_, ok := table[role]
	return ok
}
