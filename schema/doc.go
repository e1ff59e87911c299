// Package schema declares the registered configuration keys the overlay
// resolver matches environment variables against.
//
// Keys can be declared three ways:
//
//  1. Directly with NewKey.
//  2. As exported Key fields of a struct, grouped into a Section and
//     extracted by reflection. This keeps key declarations next to the
//     subsystem that owns them.
//  3. In a YAML schema file loaded with LoadFile, for tooling that has no
//     access to the declaring code.
//
// # Schema Files
//
// A schema file lists the known keys with optional comments and defaults:
//
//	keys:
//	  - path: mail.host
//	    comment: SMTP relay used for verification mail
//	    default: localhost
//	  - path: allowed-commands-while-unauthorized
//	    default: [login, register]
//
// # Usage
//
//	var mail = struct {
//		Host     schema.Key
//		Password schema.Key
//	}{
//		Host:     schema.NewKey("mail.host", "localhost", "SMTP relay"),
//		Password: schema.NewKey("mail.password", nil, "SMTP password"),
//	}
//
//	known, err := schema.Flatten(schema.Section{Name: "mail", Holder: mail})
//	if err != nil {
//		log.Fatal(err)
//	}
//	result := overlay.Apply(tree, known)
package schema
