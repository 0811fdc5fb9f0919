package constants

type (
	RequestRole string
	APIStatus   string
	CachePrefix string
)

const (
	RolePilot RequestRole = "pilot"
	RoleCrew  RequestRole = "crew"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixAirports    CachePrefix = "AIRPORTS"
	CachePrefixServiceType CachePrefix = "SERVICE_TYPES"
)

func (r RequestRole) String() string { return string(r) }
