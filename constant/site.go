package constant

// Course site endpoints.
const (
	SiteHost  = "egghead.io"
	SiteURL   = "https://" + SiteHost
	SignInURL = SiteURL + "/users/sign_in"
	LessonAPI = SiteURL + "/api/v1/lessons"
)

// VideoHost serves the original video deliveries referenced by the media metadata.
const VideoHost = "embed-ssl.wistia.com"
