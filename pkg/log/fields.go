package log

const (
	// Connection
	FieldConnID   = "conn_id"
	FieldRemote   = "remote_addr"
	FieldMemberID = "member_id"
	FieldUser     = "user"

	// Room
	FieldRoom = "room"

	// Service
	FieldService = "service"

	// Log type (for audit log)
	FieldLogType = "log_type"
	LogTypeAudit = "audit"
)
