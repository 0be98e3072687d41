/*
Package poe implements a proof of existence registry.

An account claims the ownership of an opaque content key, usually a
fingerprint of a document. A key can be owned by a single account at a time.
The owner can revoke the claim, which removes it, or transfer it to another
account. Each claim remembers the block height at which it was created or
last transferred.

Content keys are limited in size. The limit is stored in the gconf
configuration of this package and defaults to DefaultMaxContentLength.
*/
package poe
