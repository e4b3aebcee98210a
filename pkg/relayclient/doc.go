// Package relayclient posts a composed affiliation PDF to the mail relay.
//
// The wire types are shared with the relay handler, so the request and
// response shapes are defined once:
//
//	client := relayclient.New("http://localhost:8787")
//	res, err := client.SendPDF(ctx, relayclient.MailRequest{
//	    PDFBase64: doc.Base64(),
//	    FileName:  pdfdoc.FileName,
//	    FormData:  &record,
//	})
//
// A relay that answers with ok=false, or with a non-2xx status, yields a
// *RelayError carrying the relay's message.
package relayclient
