// Package sessiontransport bridges sessionstorage and net/http.
//
// sessionstorage.Storage speaks raw header strings so it stays usable from
// any HTTP layer. This package supplies the net/http glue: a Transport that
// reads the Cookie header off a request and writes Set-Cookie headers to a
// response, plus a middleware that loads the session into the request
// context.
//
// Usage:
//
//	transport := sessiontransport.New(storage)
//
//	mux.Handle("/", transport.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//		sess, _ := sessiontransport.FromContext(r.Context())
//		sess.Set("last_seen", time.Now().Unix())
//		if err := transport.Save(w, r, sess); err != nil {
//			http.Error(w, "internal error", http.StatusInternalServerError)
//			return
//		}
//		w.Write([]byte("ok"))
//	})))
package sessiontransport
