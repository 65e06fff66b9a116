package authority

// AdminAuthority 持有唯一管理員身份，初始化後不可變更
type AdminAuthority struct {
	adminID string
}

func NewAdminAuthority(adminID string) *AdminAuthority {
	if adminID == "" {
		panic("admin identity must not be empty")
	}
	return &AdminAuthority{adminID: adminID}
}

// IsAdmin 純比較，無副作用
func (a *AdminAuthority) IsAdmin(identity string) bool {
	return identity == a.adminID
}

func (a *AdminAuthority) AdminID() string {
	return a.adminID
}
