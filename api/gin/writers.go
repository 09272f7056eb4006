package gin

type ginWriter struct {
}

func (gv *ginWriter) Write(p []byte) (n int, err error) {
	log.Debug("gin server", "message", string(p))

	return len(p), nil
}

type ginErrorWriter struct {
}

func (gev *ginErrorWriter) Write(p []byte) (n int, err error) {
	log.Debug("gin server", "error", string(p))

	return len(p), nil
}
