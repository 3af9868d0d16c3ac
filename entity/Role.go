package entity

// Role กำหนดกลุ่ม route ที่ผู้ใช้เข้าถึงได้
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
	RoleStoreOwner Role = "store_owner"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleStoreOwner:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
