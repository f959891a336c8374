/*
Package asrscore is a GLM-aware edit-distance scorer for ASR hypotheses.

It replaces a naive Levenshtein table with a finite-state composition: a
tokenizer and symbol table feed a compiled "Global Mapping" (GLM) tagger/
expansion transducer and a weighted edit-distance transducer, whose
composition's shortest path yields the alignment a corpus's token error
rate (TER), modified TER (mTER) and sentence error rate (SER) are derived
from. Package structure is as follows:

■ symtab: bijective string↔id symbol table, id 0 reserved for epsilon.

■ tokenize: whitespace and character tokenizers.

■ fst: a small weighted finite-state acceptor/transducer kernel (union,
concat, closure, composition, inversion, relabeling, epsilon-removal,
determinization, shortest-path/-distance) operating over a symtab.Table.

■ glm: Global Mapping rule loader and tagging-transducer compiler.

■ edit: the two-factor weighted edit-distance transducer construction.

■ align: per-utterance alignment — tag, expand, compose, extract, classify.

■ stats: corpus-level error statistics and the column-aligned pretty-printer.

The base package contains data types shared across the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2026 The asrscore Authors.
*/
package asrscore
