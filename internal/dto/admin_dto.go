package dto

type AdminStats struct {
	TotalUsers          int64 `json:"totalUsers"`
	ActiveUsers         int64 `json:"activeUsers"`
	TotalDoctors        int64 `json:"totalDoctors"`
	ActiveDoctors       int64 `json:"activeDoctors"`
	TotalBlogs          int64 `json:"totalBlogs"`
	PublishedBlogs      int64 `json:"publishedBlogs"`
	TotalAppointments   int64 `json:"totalAppointments"`
	TodaysAppointments  int64 `json:"todaysAppointments"`
	PendingAppointments int64 `json:"pendingAppointments"`
	TotalAnnouncements  int64 `json:"totalAnnouncements"`
	RegisteredDevices   int64 `json:"registeredDevices"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type LogQuery struct {
	Level  string `query:"level"`
	Action string `query:"action"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

type UserListQuery struct {
	Search string `query:"search"`
	Role   string `query:"role"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}
