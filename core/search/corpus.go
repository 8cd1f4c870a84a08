package search

import "github.com/FocuswithJustin/SharpAssistant/core/text"

// seedCorpus holds a small public-domain sample set so retrieval works
// even before any provider has registered verses.
var seedCorpus = []text.Verse{
	{Reference: "Genesis 1:1", Text: "In the beginning God created the heaven and the earth.", Translation: "KJV", Language: "en"},
	{Reference: "Psalms 23:1", Text: "The LORD is my shepherd; I shall not want.", Translation: "KJV", Language: "en"},
	{Reference: "Proverbs 3:5", Text: "Trust in the LORD with all thine heart; and lean not unto thine own understanding.", Translation: "KJV", Language: "en"},
	{Reference: "John 1:1", Text: "In the beginning was the Word, and the Word was with God, and the Word was God.", Translation: "KJV", Language: "en"},
	{Reference: "John 3:16", Text: "For God so loved the world, that he gave his only begotten Son, that whosoever believeth in him should not perish, but have everlasting life.", Translation: "KJV", Language: "en"},
	{Reference: "Romans 8:28", Text: "And we know that all things work together for good to them that love God, to them who are the called according to his purpose.", Translation: "KJV", Language: "en"},
	{Reference: "Ephesians 2:8", Text: "For by grace are ye saved through faith; and that not of yourselves: it is the gift of God:", Translation: "KJV", Language: "en"},
	{Reference: "Philippians 4:13", Text: "I can do all things through Christ which strengtheneth me.", Translation: "KJV", Language: "en"},
	{Reference: "1 John 4:8", Text: "He that loveth not knoweth not God; for God is love.", Translation: "KJV", Language: "en"},
	{Reference: "Matthew 28:19", Text: "Go ye therefore, and teach all nations, baptizing them in the name of the Father, and of the Son, and of the Holy Ghost:", Translation: "KJV", Language: "en"},
	{Reference: "Genesis 1:1", Text: "In the beginning, God created the heavens and the earth.", Translation: "WEB", Language: "en"},
	{Reference: "Psalms 23:1", Text: "Yahweh is my shepherd: I shall lack nothing.", Translation: "WEB", Language: "en"},
	{Reference: "Proverbs 3:5", Text: "Trust in Yahweh with all your heart, and don't lean on your own understanding.", Translation: "WEB", Language: "en"},
	{Reference: "John 1:1", Text: "In the beginning was the Word, and the Word was with God, and the Word was God.", Translation: "WEB", Language: "en"},
	{Reference: "John 3:16", Text: "For God so loved the world, that he gave his one and only Son, that whoever believes in him should not perish, but have eternal life.", Translation: "WEB", Language: "en"},
	{Reference: "Romans 8:28", Text: "We know that all things work together for good for those who love God, to those who are called according to his purpose.", Translation: "WEB", Language: "en"},
	{Reference: "Ephesians 2:8", Text: "For by grace you have been saved through faith, and that not of yourselves; it is the gift of God,", Translation: "WEB", Language: "en"},
	{Reference: "Philippians 4:13", Text: "I can do all things through Christ who strengthens me.", Translation: "WEB", Language: "en"},
	{Reference: "1 John 4:8", Text: "He who doesn't love doesn't know God, for God is love.", Translation: "WEB", Language: "en"},
	{Reference: "Matthew 28:19", Text: "Go and make disciples of all nations, baptizing them in the name of the Father and of the Son and of the Holy Spirit,", Translation: "WEB", Language: "en"},
}

// NewSeededIndex builds a VerseIndex preloaded with the sample corpus.
func NewSeededIndex() (*VerseIndex, error) {
	vi, err := NewVerseIndex()
	if err != nil {
		return nil, err
	}
	if err := vi.AddAll(seedCorpus); err != nil {
		vi.Close()
		return nil, err
	}
	return vi, nil
}
