// Package bloomq classifies exam questions into the six levels of Bloom's
// revised taxonomy by comparing sentence embeddings against per-level
// keyword sets, and reconciles the levels a quiz generator declared.
//
// Quick start:
//
//	b, err := bloomq.New(bloomq.WithModelDir("models/all-MiniLM-L6-v2"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	res, _ := b.Classify("Design an experiment to test plant growth.")
//	fmt.Println(res.Level, res.Difficulty) // creating difficult
//
// A Bloomq instance is safe for concurrent use. Create once, reuse across
// requests; loading the model and embedding the keyword sets is the
// expensive step.
package bloomq
