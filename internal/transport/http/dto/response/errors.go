package response

// Messages shown to clients. Internal error detail never goes here.
const (
	MsgLoadIdeas  = "Unable to load ideas at this time."
	MsgSaveIdea   = "Unable to save your idea. Please try again."
	MsgFetchIdeas = "Unable to fetch ideas"
	MsgNotFound   = "Page not found"
	MsgInternal   = "Something went wrong!"
	MsgTooMany    = "Too many requests from this IP, please try again later."
)

var (
	ErrFetchIdeas = Failure(MsgFetchIdeas)
)
