package response

// Emitter is the host's output mechanism.
// Headers and status may be set until the response is committed,
// which happens on the first Write or on End.
type Emitter interface {
	// Status sets the status line.
	Status(code int, reason string)
	// Header queues a raw header line, either "Name: value" or a bare "Name".
	// A later line with the same name replaces the earlier one.
	Header(line string)
	// Write streams output to the client without ending the response.
	Write(p []byte) (int, error)
	// End writes the final body and closes the response.
	End(body []byte) error
}
