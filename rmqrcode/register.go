package rmqrcode

import rmqrgo "github.com/ericlevine/rmqrgo"

func init() {
	rmqrgo.RegisterWriter(rmqrgo.FormatRMQRCode, func() rmqrgo.Writer {
		return NewWriter()
	})
}
