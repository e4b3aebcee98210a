// Package composer drives one affiliation form through its lifecycle:
// load, edit, save for review, render to PDF and send through the relay.
//
// A Composer is safe for concurrent use. State changes hold its mutex;
// rendering and the relay call work on a copy of the record, so a download
// and a send may run at the same time:
//
//	c := composer.New(store, relayclient.New(baseURL))
//	c.Load(ctx)
//	_ = c.UpdateField(form.FieldNombres, "Ana")
//	preview, err := c.Save(ctx)
//	status := c.SendByEmail(ctx)
//
// Load never fails: a missing or corrupt snapshot starts a blank form.
package composer
