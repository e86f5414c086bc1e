package http

// ProvisionUserRequest registers or updates a local account for a Firebase
// identity.
type ProvisionUserRequest struct {
	FirebaseUID string `json:"firebase_uid" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	FullName    string `json:"full_name"`
	Role        string `json:"role" binding:"required"`
}
