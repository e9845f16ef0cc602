// Package monitor reads the snapshot files exported by the monitoring backend.
//
// # Overview
//
// A snapshot lists the registered APIs with the last payload each one
// returned, and the projects with their discovered routes:
//
//	{
//	  "apis":     [{"_id": "a1", "url": "https://...", "lastStatus": "success",
//	                "lastResponse": {...}}],
//	  "projects": [{"_id": "p1", "name": "shop", "routes": [...],
//	                "apiMetrics": {"totalRequests": 10, ...}}]
//	}
//
// Payloads are decoded with [value.Parse], so object key order survives the
// round trip from the backend to the tree view.
//
// # Bare Payloads
//
// A snapshot is an object whose "apis" and "projects" members are arrays of
// records with a string "_id". Anything else, including a snapshot lookalike
// whose records fail to decode, is a bare payload: [Decode] treats it as the
// payload of a single API via [Wrap], so every JSON document can be shown.
//
// # Entities
//
// An [Entity] names something the viewer can display. Its identity decides
// whether an expansion state is kept or discarded when new data arrives.
//
// [value.Parse]: github.com/matzehuels/apiscope/pkg/value.Parse
package monitor
