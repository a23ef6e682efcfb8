package adb

// Package adb wraps invocations of the external device bridge binary:
// network connect, tcpip mode switching, device listing, and filtered
// user-supplied commands. The package depends only on exit status and
// recognizable markers in the tool's output; there is no protocol
// implementation here.
